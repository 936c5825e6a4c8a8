package health

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urbanstyle/support-assistant/internal/database"
)

// Pinger is anything that can confirm an external dependency is alive.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker probes every dependency the process was configured with.
// Dependencies that were disabled by configuration report "disabled"
// rather than failing the overall status.
type Checker struct {
	dbManager *database.Manager
	search    Pinger
	llm       Pinger
	logger    *logrus.Logger
}

func NewChecker(dbManager *database.Manager, search, llm Pinger, logger *logrus.Logger) *Checker {
	return &Checker{
		dbManager: dbManager,
		search:    search,
		llm:       llm,
		logger:    logger,
	}
}

// ServiceHealth is the probe result for one dependency.
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth is the aggregate view served by /health.
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

const probeTimeout = 5 * time.Second

// Check probes everything and aggregates. The process is "healthy"
// when every enabled dependency answers, "degraded" otherwise.
func (c *Checker) Check(ctx context.Context) OverallHealth {
	services := []ServiceHealth{
		c.probe(ctx, "elasticsearch", c.search),
		c.probe(ctx, "openai", c.llm),
		c.probeFunc("postgresql", c.dbManager != nil && c.dbManager.DB != nil, func() error {
			return c.dbManager.PingDatabase()
		}),
		c.probeFunc("redis", c.dbManager != nil && c.dbManager.Redis != nil, func() error {
			return c.dbManager.PingRedis()
		}),
	}

	status := "healthy"
	for _, s := range services {
		if s.Status == "unhealthy" {
			status = "degraded"
			break
		}
	}

	return OverallHealth{Status: status, Services: services}
}

func (c *Checker) probe(ctx context.Context, name string, p Pinger) ServiceHealth {
	if p == nil {
		return disabled(name)
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	return c.result(name, err, time.Since(start))
}

func (c *Checker) probeFunc(name string, enabled bool, ping func() error) ServiceHealth {
	if !enabled {
		return disabled(name)
	}

	start := time.Now()
	err := ping()
	return c.result(name, err, time.Since(start))
}

func (c *Checker) result(name string, err error, elapsed time.Duration) ServiceHealth {
	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		c.logger.WithError(err).WithField("service", name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: int(elapsed.Milliseconds()),
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

func disabled(name string) ServiceHealth {
	return ServiceHealth{
		Name:        name,
		Status:      "disabled",
		LastChecked: time.Now().Format(time.RFC3339),
	}
}
