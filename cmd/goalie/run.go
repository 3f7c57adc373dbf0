package main

import (
	_ "expvar" // Register /debug/vars
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/robot-goalie/internal/capture"
	"github.com/ironsheep/robot-goalie/internal/config"
	"github.com/ironsheep/robot-goalie/internal/control"
	"github.com/ironsheep/robot-goalie/internal/imaging"
	"github.com/ironsheep/robot-goalie/internal/scene"
	"github.com/ironsheep/robot-goalie/internal/trajectory"
)

var (
	actuatorAddr string
	sourceKind   string
	sourceDir    string
	debugAddr    string
	annotateDir  string
	annotateN    int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the vision control loop",
	Long: `Reads frames from the camera (or a directory of still images), locates
the robot and the tracked objects, and sends move, stop and strike commands
to the actuator.

Counters and the frame rate are served on /debug/vars when --debug-addr is
set.`,
	RunE: runControl,
}

func init() {
	runCmd.Flags().StringVar(&actuatorAddr, "actuator-addr", "", "Actuator address (overrides control.actuator_addr)")
	runCmd.Flags().StringVar(&sourceKind, "source", "", "Frame source: camera or dir (overrides capture.source)")
	runCmd.Flags().StringVar(&sourceDir, "dir", "", "Image directory for --source dir (overrides capture.dir)")
	runCmd.Flags().StringVar(&debugAddr, "debug-addr", "", "Serve expvar metrics on this address")
	runCmd.Flags().StringVar(&annotateDir, "annotate-dir", "", "Save annotated frames as PNGs in this directory")
	runCmd.Flags().IntVar(&annotateN, "annotate-every", 10, "Save every Nth frame when --annotate-dir is set")
	rootCmd.AddCommand(runCmd)
}

func runControl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if actuatorAddr != "" {
		cfg.Control.ActuatorAddr = actuatorAddr
	}
	if sourceKind != "" {
		cfg.Capture.Source = sourceKind
	}
	if sourceDir != "" {
		cfg.Capture.Dir = sourceDir
	}
	if err := validate(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(cfg.Capture)
	if err != nil {
		return err
	}
	if cfg.Capture.Threaded {
		latest := capture.NewLatest(src, logger)
		latest.Start(ctx)
		src = latest
	}
	defer src.Close()

	sender, err := control.Dial(ctx, cfg.Control.ActuatorAddr, cfg.Control.DialTimeout.Duration)
	if err != nil {
		return err
	}
	defer sender.Close()

	ctrl := newController(cfg, sender)
	ctrl.Metrics().Publish("goalie")

	if annotateDir != "" {
		w, err := control.NewPNGWriter(annotateDir, annotateN, logger)
		if err != nil {
			return err
		}
		ctrl.SetAnnotator(w)
	}

	if debugAddr != "" {
		go func() {
			if err := http.ListenAndServe(debugAddr, nil); err != nil && err != http.ErrServerClosed {
				logger.Error("debug server failed", "error", err)
			}
		}()
	}

	logger.Info("goalie starting",
		"version", Version,
		"session", ctrl.Session(),
		"actuator", cfg.Control.ActuatorAddr,
		"source", cfg.Capture.Source)
	return ctrl.Run(ctx, src)
}

func openSource(cfg config.CaptureConfig) (capture.Source, error) {
	switch cfg.Source {
	case "dir":
		return capture.NewDirSource(cfg.Dir, capture.WithLoop(cfg.Loop))
	case "camera":
		return capture.OpenCamera(cfg.Device)
	default:
		return nil, fmt.Errorf("unknown capture source %q", cfg.Source)
	}
}

func newController(cfg *config.Config, sender control.Sender) *control.Controller {
	locator := scene.NewLocator(scene.Config{
		Robot:      cfg.Colors.Robot,
		Markers:    cfg.Colors.Markers,
		Rails:      cfg.Colors.Rails,
		Track:      cfg.Colors.Track,
		NumObjects: cfg.Detection.NumObjects,
		MinRadius:  cfg.Detection.MinRadius,
	}, logger)

	var smoother trajectory.Smoother
	if cfg.Trajectory.Smoothing == "kalman" {
		smoother = trajectory.NewKalmanSmoother(trajectory.DefaultKalmanOptions())
	}
	planner := trajectory.NewPlanner(trajectory.Config{
		Frames:   cfg.Trajectory.Frames,
		Bounces:  cfg.Trajectory.Bounces,
		Smoother: smoother,
	}, logger)

	return control.New(control.Config{
		PacketDelay:       cfg.Control.PacketDelay,
		SafetyMarginPct:   cfg.Control.SafetyMarginPct,
		SolenoidThreshold: cfg.Control.SolenoidThreshold,
		StopThreshold:     cfg.Control.StopThreshold,
		SolenoidDuration:  cfg.Control.SolenoidDuration.Duration,
		MaxMisses:         cfg.Control.MaxMisses,
		Setup: imaging.FrameSetup{
			Width:          cfg.Frame.Width,
			Height:         cfg.Frame.Height,
			Scale:          cfg.Frame.Scale,
			BlurWindow:     cfg.Frame.BlurWindow,
			FlipHorizontal: cfg.Frame.Flip,
		},
		SkipFrameErrors: cfg.Capture.OnFailure == "skip",
	}, locator, planner, sender, logger)
}
