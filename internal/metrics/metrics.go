package metrics

import (
	"sync"

	"github.com/rouvinerh/is4302-project/pkg/telemetry"
)

var (
	// Marketplace counters
	EventsCreated   *telemetry.Counter
	TicketsSold     *telemetry.Counter
	TicketsListed   *telemetry.Counter
	TicketsRedeemed *telemetry.Counter

	// Error tracking counters
	ErrorsTotal *telemetry.Counter

	// Histograms
	SaleProceeds    *telemetry.Histogram
	RequestDuration *telemetry.Histogram

	initOnce sync.Once
	initErr  error
)

// Init initializes all marketplace metrics. Instruments stay nil (and
// no-op) until Init is called, so services can record unconditionally.
func Init() error {
	initOnce.Do(func() {
		initErr = initMetrics()
	})
	return initErr
}

func initMetrics() error {
	var err error

	EventsCreated, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "marketplace_events_created_total",
		Description: "Total number of events created",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	TicketsSold, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "marketplace_tickets_sold_total",
		Description: "Total number of tickets sold, primary and secondary",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	TicketsListed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "marketplace_tickets_listed_total",
		Description: "Total number of tickets listed for resale",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	TicketsRedeemed, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "marketplace_tickets_redeemed_total",
		Description: "Total number of tickets redeemed",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	ErrorsTotal, err = telemetry.NewCounter(telemetry.MetricOpts{
		Name:        "marketplace_errors_total",
		Description: "Total number of errors by type and operation",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	SaleProceeds, err = telemetry.NewHistogram(telemetry.MetricOpts{
		Name:        "marketplace_sale_proceeds_wei",
		Description: "Payment currency settled per ticket sale",
		Unit:        "1",
	})
	if err != nil {
		return err
	}

	RequestDuration, err = telemetry.NewHistogramWithBuckets(telemetry.MetricOpts{
		Name:        "marketplace_request_duration_seconds",
		Description: "HTTP request duration in seconds",
		Unit:        "s",
	}, []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10})
	if err != nil {
		return err
	}

	return nil
}
