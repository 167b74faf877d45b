package cmd

import (
	"errors"
	"net/http"

	httpadapter "amendments/internal/adapters/in/http"
	"amendments/internal/adapters/out/events"
	"amendments/internal/adapters/out/kafka"
	"amendments/internal/adapters/out/postgres"
	"amendments/internal/adapters/out/postgres/amendmentrepo"
	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/application/usecases/queries"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"
	"amendments/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters, use cases and jobs for one process.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	clock      kernel.Clock
	registry   *prometheus.Registry
	publisher  ports.EventPublisher
	uowFactory *postgres.GormUnitOfWorkFactory
	deps       commands.Dependencies
	closers    []func() error
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := events.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		config:   config,
		gormDB:   gormDB,
		logger:   logger,
		clock:    kernel.SystemClock(),
		registry: registry,
	}

	publisher, err := c.newPublisher()
	if err != nil {
		return nil, err
	}
	c.publisher = events.NewInstrumentedPublisher(publisher, metrics)
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher, logger)
	c.deps = commands.DefaultDependencies(c.clock)

	return c, nil
}

// newPublisher writes events to Kafka when brokers are configured and to the
// log otherwise.
func (c *CompositionRoot) newPublisher() (ports.EventPublisher, error) {
	if len(c.config.KafkaBrokers) == 0 {
		c.logger.Info("no kafka brokers configured, domain events are logged only")
		return events.NewLogPublisher(c.logger), nil
	}

	writer, err := kafka.NewWriter(kafka.Config{
		Brokers:      c.config.KafkaBrokers,
		Topic:        c.config.KafkaAmendmentTopic,
		WriteTimeout: c.config.KafkaWriteTimeout,
	})
	if err != nil {
		return nil, err
	}
	publisher := kafka.NewPublisher(writer, c.logger)
	c.closers = append(c.closers, publisher.Close)
	return publisher, nil
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// amendmentReader reads outside of any unit of work, so nothing is tracked.
func (c *CompositionRoot) amendmentReader() queries.AmendmentReader {
	return amendmentrepo.NewGormAmendmentRepository(c.gormDB, nil)
}

func (c *CompositionRoot) CreateCreateAmendmentCommandHandler() commands.CreateAmendmentCommandHandler {
	return commands.NewCreateAmendmentCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateUpdateAmendmentCommandHandler() commands.UpdateAmendmentCommandHandler {
	return commands.NewUpdateAmendmentCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateDecideAmendmentCommandHandler() commands.DecideAmendmentCommandHandler {
	return commands.NewDecideAmendmentCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateCancelAmendmentCommandHandler() commands.CancelAmendmentCommandHandler {
	return commands.NewCancelAmendmentCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateProposeChangesCommandHandler() commands.ProposeChangesCommandHandler {
	return commands.NewProposeChangesCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateAdjustReceivedQuantityCommandHandler() commands.AdjustReceivedQuantityCommandHandler {
	return commands.NewAdjustReceivedQuantityCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateExpireAmendmentsCommandHandler() commands.ExpireAmendmentsCommandHandler {
	return commands.NewExpireAmendmentsCommandHandler(c.unitOfWorkFactory(), c.deps)
}

func (c *CompositionRoot) CreateGetAmendmentQueryHandler() queries.GetAmendmentQueryHandler {
	return queries.NewGetAmendmentQueryHandler(c.amendmentReader(), c.clock)
}

func (c *CompositionRoot) CreateGetAmendmentByNumberQueryHandler() queries.GetAmendmentByNumberQueryHandler {
	return queries.NewGetAmendmentByNumberQueryHandler(c.amendmentReader(), c.clock)
}

func (c *CompositionRoot) CreateListAmendmentsQueryHandler() queries.ListAmendmentsQueryHandler {
	return queries.NewListAmendmentsQueryHandler(c.amendmentReader(), c.clock)
}

func (c *CompositionRoot) CreateHTTPRouter() *echo.Echo {
	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateAmendment:        c.CreateCreateAmendmentCommandHandler(),
		UpdateAmendment:        c.CreateUpdateAmendmentCommandHandler(),
		DecideAmendment:        c.CreateDecideAmendmentCommandHandler(),
		CancelAmendment:        c.CreateCancelAmendmentCommandHandler(),
		ProposeChanges:         c.CreateProposeChangesCommandHandler(),
		AdjustReceivedQuantity: c.CreateAdjustReceivedQuantityCommandHandler(),
		GetAmendment:           c.CreateGetAmendmentQueryHandler(),
		GetAmendmentByNumber:   c.CreateGetAmendmentByNumberQueryHandler(),
		ListAmendments:         c.CreateListAmendmentsQueryHandler(),
	}, c.clock)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		Logger:      c.logger,
		Metrics:     c.MetricsHandler(),
		MetricsPath: c.config.MetricsPath,
	})
}

func (c *CompositionRoot) CreateExpirationJob() (*jobs.ExpirationJob, error) {
	return jobs.NewExpirationJob(c.CreateExpireAmendmentsCommandHandler(), jobs.ExpirationConfig{
		Schedule:  c.config.ExpirationSweepSchedule,
		BatchSize: c.config.ExpirationSweepBatch,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	expiration, err := c.CreateExpirationJob()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(c.logger, expiration), nil
}

func (c *CompositionRoot) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Close releases the publisher connections. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	return err
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
