package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Doer is satisfied by *fasthttp.Client.
type Doer interface {
	DoTimeout(req *fasthttp.Request, resp *fasthttp.Response, timeout time.Duration) error
}

// Monitor probes the remote API on a cron schedule. Any HTTP answer below 500
// counts as reachable.
type Monitor struct {
	client   Doer
	url      string
	interval time.Duration
	timeout  time.Duration

	status Status
	mu     sync.RWMutex
	cron   *cron.Cron
	logger *zap.Logger
}

func New(client Doer, url string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if client == nil {
		client = &fasthttp.Client{}
	}
	timeout := interval / 2
	if timeout > 5*time.Second {
		timeout = 5 * time.Second
	}
	m := &Monitor{
		client:   client,
		url:      url,
		interval: interval,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger,
	}

	schedule := fmt.Sprintf("@every %ds", max(int(interval.Seconds()), 1))
	_, _ = m.cron.AddFunc(schedule, m.Refresh)
	return m
}

// Start probes once and then launches the scheduler.
func (m *Monitor) Start() {
	m.Refresh()
	m.cron.Start()
	m.logger.Info("upstream monitor started", zap.String("url", m.url), zap.Duration("interval", m.interval))
}

// Stop waits for a running probe or ctx, whichever ends first.
func (m *Monitor) Stop(ctx context.Context) {
	stopCtx := m.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().API
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Refresh probes the API now.
func (m *Monitor) Refresh() {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(m.url)
	req.Header.SetMethod(fasthttp.MethodGet)

	started := time.Now()
	err := m.client.DoTimeout(req, resp, m.timeout)
	status := Status{
		Latency:   time.Since(started),
		LastCheck: time.Now(),
	}
	if err != nil {
		status.Error = err.Error()
	} else {
		status.StatusCode = resp.StatusCode()
		status.API = status.StatusCode < fasthttp.StatusInternalServerError
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if previous.API != status.API || previous.LastCheck.IsZero() {
		m.logger.Info("upstream reachability changed",
			zap.Bool("online", status.API),
			zap.Int("status_code", status.StatusCode),
			zap.String("error", status.Error),
		)
	}
}
