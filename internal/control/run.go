package control

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/robot-goalie/internal/capture"
	"github.com/ironsheep/robot-goalie/internal/imaging"
)

// Run reads frames from src and steps the controller until ctx is done or
// the source is exhausted; both end the loop without error.
//
// A failed read returns the error unless SkipFrameErrors is set, in which
// case it is logged and the next frame is read.
func (c *Controller) Run(ctx context.Context, src capture.Source) error {
	c.logger.Info("control loop started", "packet_delay", c.cfg.PacketDelay)
	defer func() {
		c.logger.Info("control loop stopped",
			"frames", c.metrics.Frames(),
			"send_errors", c.metrics.SendErrors(),
			"fps", c.metrics.FPS())
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		img, err := src.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			c.logger.Info("frame source exhausted")
			return nil
		case ctx.Err() != nil:
			return nil
		default:
			c.metrics.frameErrs.Add(1)
			if !c.cfg.SkipFrameErrors {
				return fmt.Errorf("failed to acquire frame: %w", err)
			}
			c.logger.Warn("skipping frame", "error", err)
			continue
		}

		c.Step(imaging.Preprocess(img, c.cfg.Setup))
	}
}
