// Package discovery registers the API instance in etcd so the edge proxy can
// route to it. Registration rides a leased key; if the process dies, the lease
// lapses and the instance drops out on its own.
package discovery

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"github.com/example/laundryhub/pkg/config"
)

type Registry struct {
	client *clientv3.Client
	config *config.EtcdConfig
}

type Instance struct {
	Name string
	Host string
	Port int
}

func NewRegistry(cfg *config.EtcdConfig) (*Registry, error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}

	return &Registry{client: cli, config: cfg}, nil
}

func (r *Registry) instanceKey(instance *Instance) string {
	return fmt.Sprintf("%s%s/%s:%d", r.config.Prefix, instance.Name, instance.Host, instance.Port)
}

// Register writes the instance under a 30 second lease and keeps it alive for
// the lifetime of ctx.
func (r *Registry) Register(ctx context.Context, instance *Instance) error {
	value := fmt.Sprintf("%s:%d", instance.Host, instance.Port)

	lease, err := r.client.Grant(ctx, 30)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}

	_, err = r.client.Put(ctx, r.instanceKey(instance), value, clientv3.WithLease(lease.ID))
	if err != nil {
		return fmt.Errorf("failed to register instance: %w", err)
	}

	ch, kaerr := r.client.KeepAlive(ctx, lease.ID)
	if kaerr != nil {
		return fmt.Errorf("failed to keep lease alive: %w", kaerr)
	}

	go func() {
		for range ch {
		}
	}()

	return nil
}

func (r *Registry) Deregister(ctx context.Context, instance *Instance) error {
	_, err := r.client.Delete(ctx, r.instanceKey(instance))
	if err != nil {
		return fmt.Errorf("failed to deregister instance: %w", err)
	}
	return nil
}

func (r *Registry) Close() error {
	return r.client.Close()
}
