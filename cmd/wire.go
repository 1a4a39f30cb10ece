package cmd

import (
	"fmt"
	"time"

	statusadapter "github.com/bnema/techrelay/internal/adapters/render/status"
	tomlrepo "github.com/bnema/techrelay/internal/adapters/repo/toml"
	"github.com/bnema/techrelay/internal/application"
	"github.com/bnema/techrelay/internal/domain"
	"github.com/spf13/viper"
)

type app struct {
	config         *viper.Viper
	repo           *tomlrepo.TrackingRepository
	routes         application.RoutingTable
	contacts       map[string]string
	policy         domain.SLAPolicy
	tick           time.Duration
	recordRenderer func([]domain.TrackingRecord, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp(cfg *viper.Viper) (*app, error) {
	repo, err := tomlrepo.NewTrackingRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire tracking repository: %w", err)
	}

	routes, err := routingTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire routing table: %w", err)
	}

	contacts, err := contactNames(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire contacts: %w", err)
	}

	policy, tick, err := slaPolicy(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire sla policy: %w", err)
	}

	return &app{
		config:         cfg,
		repo:           repo,
		routes:         routes,
		contacts:       contacts,
		policy:         policy,
		tick:           tick,
		recordRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}
