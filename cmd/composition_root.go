package cmd

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	dentlabhttp "dentlab/internal/adapters/in/http"
	"dentlab/internal/adapters/out/postgres"
	"dentlab/internal/core/application/usecases/commands"
	"dentlab/internal/core/application/usecases/queries"
	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/services"
	"dentlab/internal/eventbus"
	"dentlab/internal/jobs"
	"dentlab/internal/notifications"
	"dentlab/internal/pkg/clock"
)

// CompositionRoot wires the application graph: database, event bus,
// command and query handlers, HTTP servers, and background jobs.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	bus        *eventbus.Bus
	gateway    *notifications.Gateway
	directory  *notifications.StaticDirectory
	clock      clock.Clock
	sleeper    clock.Sleeper
	logger     *zap.Logger
}

// NewCompositionRoot builds the shared infrastructure once; handler factories
// hand out fresh use case instances over it.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	directory, err := notifications.NewStaticDirectory(config.LabRecipientIDs)
	if err != nil {
		return nil, err
	}

	bus := eventbus.NewBus(config.BusBufferSize, logger)

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		bus:        bus,
		gateway:    notifications.NewGateway(bus),
		directory:  directory,
		clock:      clock.NewSystem(),
		sleeper:    clock.NewTimerSleeper(),
		logger:     logger,
	}, nil
}

// Bus returns the process-wide alert bus.
func (c *CompositionRoot) Bus() *eventbus.Bus {
	return c.bus
}

// Gateway returns the per-user alert subscription gateway.
func (c *CompositionRoot) Gateway() *notifications.Gateway {
	return c.gateway
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, services.NewOrderNumberGenerator(), c.clock, c.sleeper)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.alertPublisher(), c.directory, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelStaleDraftsCommandHandler() commands.CancelStaleDraftsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelStaleDraftsCommandHandler(f, c.alertPublisher(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersForClinicQueryHandler() queries.GetOrdersForClinicQueryHandler {
	return queries.NewGetOrdersForClinicQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueWorkQueryHandler() queries.GetOverdueWorkQueryHandler {
	return queries.NewGetOverdueWorkQueryHandler(c.gormDB)
}

// CreateAPIServer builds the JSON API server over the use case handlers.
func (c *CompositionRoot) CreateAPIServer() *dentlabhttp.Server {
	return dentlabhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateGetOrdersForClinicQueryHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
	)
}

// CreateStreamServer builds the SSE alert stream endpoint.
func (c *CompositionRoot) CreateStreamServer() *dentlabhttp.StreamServer {
	return dentlabhttp.NewStreamServer(c.gateway)
}

// CreateJobManager wires the background jobs with the configured system actor.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	systemActorID, err := kernel.UUIDFromString(c.config.SystemActorID)
	if err != nil {
		return nil, err
	}

	sweepJob := jobs.NewStaleDraftSweepJob(
		c.CreateCancelStaleDraftsCommandHandler(),
		systemActorID,
		actor.Assistant,
		time.Duration(c.config.StaleDraftMaxAgeDays)*24*time.Hour,
		c.logger,
	)

	reminderJob := jobs.NewOverdueWorkReminderJob(
		c.CreateGetOverdueWorkQueryHandler(),
		c.alertPublisher(),
		systemActorID,
		time.Duration(c.config.OverdueAfterHours)*time.Hour,
		c.clock,
		c.logger,
	)

	return jobs.NewJobManager(sweepJob, reminderJob), nil
}

func (c *CompositionRoot) alertPublisher() commands.AlertPublisher {
	return busAlertPublisher{bus: c.bus}
}

// busAlertPublisher adapts the event bus to the commands.AlertPublisher port.
type busAlertPublisher struct {
	bus *eventbus.Bus
}

func (p busAlertPublisher) PublishAlert(event eventbus.AlertEvent) {
	p.bus.Publish(eventbus.TopicAlerts, event)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
