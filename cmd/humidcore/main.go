// humidcore - Humidifier Control Service
//
// This is the main entry point for the humidcore application.
// humidcore manages a fleet of humidifier entities:
//   - Validated control requests (mode, target humidity)
//   - Power-cycle-durable state recovery from SQLite
//   - Retained MQTT state topics and command handling
//   - Optional humidity telemetry to InfluxDB
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/humidcore/internal/bridges/mqttbridge"
	"github.com/nerrad567/humidcore/internal/drivers/generic"
	"github.com/nerrad567/humidcore/internal/humidifier"
	"github.com/nerrad567/humidcore/internal/infrastructure/config"
	"github.com/nerrad567/humidcore/internal/infrastructure/database"
	"github.com/nerrad567/humidcore/internal/infrastructure/influxdb"
	"github.com/nerrad567/humidcore/internal/infrastructure/logging"
	"github.com/nerrad567/humidcore/internal/infrastructure/mqtt"
	"github.com/nerrad567/humidcore/internal/infrastructure/prefs"
	"github.com/nerrad567/humidcore/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting humidcore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Preference store backing humidifier state recovery
	store := prefs.NewSQLiteStore(db.DB)

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetLogger(log)
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build humidifier entities from config
	if err := buildHumidifiers(cfg, store, mqttClient, influxClient, log); err != nil {
		return fmt.Errorf("building humidifiers: %w", err)
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. InfluxDB (if enabled)
	// 2. MQTT
	// 3. Database

	log.Info("humidcore stopped")
	return nil
}

// buildHumidifiers constructs one entity per configured humidifier and
// wires it into the bridge, telemetry and persistence.
func buildHumidifiers(
	cfg *config.Config,
	store humidifier.Store,
	mqttClient *mqtt.Client,
	influxClient *influxdb.Client,
	log *logging.Logger,
) error {
	var bridge *mqttbridge.Bridge
	if mqttClient != nil {
		var err error
		bridge, err = mqttbridge.NewBridge(mqttbridge.Options{
			Broker: mqttClient,
			QoS:    byte(cfg.MQTT.QoS),
			Logger: log,
		})
		if err != nil {
			return fmt.Errorf("creating MQTT bridge: %w", err)
		}
	}

	var recorder *telemetry.Recorder
	if influxClient != nil {
		recorder = telemetry.NewRecorder(influxClient)
	}

	for _, hcfg := range cfg.Humidifiers {
		entity, driver, err := buildHumidifier(hcfg, store, log)
		if err != nil {
			return err
		}
		if err := wireHumidifier(entity, driver, bridge, recorder, log); err != nil {
			return fmt.Errorf("humidifier %q: %w", hcfg.Name, err)
		}
	}

	log.Info("humidifiers initialised", "count", len(cfg.Humidifiers))
	return nil
}

// wireHumidifier recovers persisted state and connects the entity's
// observers and sensor feed.
//
// Order matters: the entity is lock-free, and once Attach subscribes
// the command topic, calls arrive on the MQTT router goroutine. The
// restored state is applied before that subscription exists so nothing
// can mutate the entity concurrently; the publish afterwards hands the
// boot state to the observers attached in between.
func wireHumidifier(
	entity *humidifier.Humidifier,
	driver *generic.Humidifier,
	bridge *mqttbridge.Bridge,
	recorder *telemetry.Recorder,
	log *logging.Logger,
) error {
	if rs, ok := entity.RestoreState(); ok {
		rs.Apply(entity)
		log.Info("humidifier state restored",
			"humidifier", entity.Name(),
			"mode", entity.Mode.String(),
			"target_humidity", entity.TargetHumidity,
		)
	} else {
		log.Info("no saved state, using defaults", "humidifier", entity.Name())
	}

	if bridge != nil {
		if err := bridge.Attach(entity); err != nil {
			return err
		}
		if err := bridge.AttachSensor(entity.Name(), driver); err != nil {
			return err
		}
	}
	if recorder != nil {
		recorder.Observe(entity)
	}

	entity.PublishState()
	entity.DumpTraits()
	return nil
}

// buildHumidifier constructs a single entity with its driver and
// configured overrides.
func buildHumidifier(
	hcfg config.HumidifierConfig,
	store humidifier.Store,
	log *logging.Logger,
) (*humidifier.Humidifier, *generic.Humidifier, error) {
	driver, err := generic.New(hcfg)
	if err != nil {
		return nil, nil, err
	}

	entity, err := humidifier.New(hcfg.Name, driver, store)
	if err != nil {
		return nil, nil, fmt.Errorf("humidifier %q: %w", hcfg.Name, err)
	}
	driver.Bind(entity)
	entity.SetLogger(log)

	if hcfg.VisualMinHumidity != nil {
		if err := entity.SetVisualMinHumidityOverride(float32(*hcfg.VisualMinHumidity)); err != nil {
			return nil, nil, fmt.Errorf("humidifier %q: visual_min_humidity: %w", hcfg.Name, err)
		}
	}
	if hcfg.VisualMaxHumidity != nil {
		if err := entity.SetVisualMaxHumidityOverride(float32(*hcfg.VisualMaxHumidity)); err != nil {
			return nil, nil, fmt.Errorf("humidifier %q: visual_max_humidity: %w", hcfg.Name, err)
		}
	}
	if hcfg.VisualTargetStep != nil || hcfg.VisualCurrentStep != nil {
		target := float32(hcfg.Step)
		if hcfg.VisualTargetStep != nil {
			target = float32(*hcfg.VisualTargetStep)
		}
		current := target
		if hcfg.VisualCurrentStep != nil {
			current = float32(*hcfg.VisualCurrentStep)
		}
		if err := entity.SetVisualHumidityStepOverride(target, current); err != nil {
			return nil, nil, fmt.Errorf("humidifier %q: visual step override: %w", hcfg.Name, err)
		}
	}

	return entity, driver, nil
}

// getConfigPath returns the configuration file path.
// Uses HUMIDCORE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HUMIDCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
