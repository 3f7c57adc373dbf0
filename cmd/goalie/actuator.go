package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/robot-goalie/internal/actuator"
	"github.com/ironsheep/robot-goalie/internal/config"
)

var (
	listenAddr string
	driverKind string
	serialPort string
)

var actuatorCmd = &cobra.Command{
	Use:   "actuator",
	Short: "Run the remote actuator",
	Long: `Listens for the control loop's connection and drives the stepper motor
and solenoid. Only one client is served at a time.

The sim driver only counts steps and pulses; the serial driver talks to a
motor board on --port.`,
	RunE: runActuator,
}

func init() {
	actuatorCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (overrides actuator.listen)")
	actuatorCmd.Flags().StringVar(&driverKind, "driver", "", "Driver: sim or serial (overrides actuator.driver)")
	actuatorCmd.Flags().StringVar(&serialPort, "port", "", "Serial port for the serial driver (overrides actuator.serial.port)")
	rootCmd.AddCommand(actuatorCmd)
}

func runActuator(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Actuator.Listen = listenAddr
	}
	if driverKind != "" {
		cfg.Actuator.Driver = driverKind
	}
	if serialPort != "" {
		cfg.Actuator.Serial.Port = serialPort
	}
	if err := validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drv, err := openDriver(cfg.Actuator)
	if err != nil {
		return err
	}

	srv := actuator.NewServer(actuator.Config{
		StepsPerRev:  cfg.Actuator.StepsPerRev,
		GearRadiusCM: cfg.Actuator.GearRadiusCM,
		EdgeLengthCM: cfg.Actuator.EdgeLengthCM,
		StepDelay:    cfg.Actuator.StepDelay.Duration,
		Reverse:      cfg.Actuator.ReverseDir,
	}, drv, logger)
	defer srv.Close()

	ln, err := net.Listen("tcp", cfg.Actuator.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Actuator.Listen, err)
	}

	logger.Info("actuator starting", "version", Version, "driver", cfg.Actuator.Driver)
	return srv.Serve(ctx, ln)
}

func openDriver(cfg config.ActuatorConfig) (actuator.Driver, error) {
	switch cfg.Driver {
	case "sim":
		return actuator.NewSimDriver(logger), nil
	case "serial":
		return actuator.OpenSerial(actuator.SerialOptions{
			Port:     cfg.Serial.Port,
			BaudRate: cfg.Serial.BaudRate,
			DataBits: cfg.Serial.DataBits,
			StopBits: cfg.Serial.StopBits,
			Parity:   cfg.Serial.Parity,
		})
	default:
		return nil, fmt.Errorf("unknown actuator driver %q", cfg.Driver)
	}
}
