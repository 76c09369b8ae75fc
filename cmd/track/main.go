package main

import (
	"context"
	"fmt"

	"github.com/milosgajdos/go-track/config"
	"github.com/milosgajdos/go-track/sim"
	"github.com/milosgajdos/matrix"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

func init() {
	log.SetLevel(log.InfoLevel)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	if err := NewCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("track failed: %v", err)
	}
}

// NewCmd creates track command
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "track [flags]",
		Short:         "Simulate 1D object tracking with a Kalman filter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          doTrack,
	}
	cmd.Flags().StringP("config", "c", "", "`<path>` to YAML configuration")
	cmd.Flags().IntP("steps", "n", 0, "number of simulation steps")
	cmd.Flags().StringP("plot", "p", "", "`<file>` to save the tracking plot to")
	cmd.Flags().Uint64("process-seed", 0, "process noise seed")
	cmd.Flags().Uint64("measurement-seed", 0, "measurement noise seed")
	cmd.Flags().Float64Slice("dropout", nil, "sensor dropout interval `start,end`")
	cmd.Flags().BoolP("verbose", "v", false, "log every simulation step")

	return cmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.Default()

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if c, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("steps") {
		if c.Steps, err = cmd.Flags().GetInt("steps"); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("process-seed") {
		seed, err := cmd.Flags().GetUint64("process-seed")
		if err != nil {
			return nil, err
		}
		c.ProcessSeed = &seed
	}

	if cmd.Flags().Changed("measurement-seed") {
		seed, err := cmd.Flags().GetUint64("measurement-seed")
		if err != nil {
			return nil, err
		}
		c.MeasurementSeed = &seed
	}

	if cmd.Flags().Changed("dropout") {
		d, err := cmd.Flags().GetFloat64Slice("dropout")
		if err != nil {
			return nil, err
		}
		if len(d) != 2 {
			return nil, fmt.Errorf("%w: dropout needs start and end: %v", config.ErrInvalid, d)
		}
		c.Dropout = &config.Dropout{Start: d[0], End: d[1]}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func doTrack(cmd *cobra.Command, args []string) error {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}

	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(c)
	if err != nil {
		return fmt.Errorf("failed to create simulation: %w", err)
	}

	procSeed, measSeed := s.Seeds()
	log.WithFields(log.Fields{
		"steps":            c.Steps,
		"time_step":        c.TimeStep,
		"process_seed":     procSeed,
		"measurement_seed": measSeed,
	}).Info("starting simulation")

	m := s.Filter().Model()
	log.WithField("process_noise", m.ProcessNoise()).Debugf("model\nA:\n%v\nQ:\n%v\nC:\n%v\nR:\n%v",
		matrix.Format(m.SystemMatrix()), matrix.Format(m.StateCov()),
		matrix.Format(m.OutputMatrix()), matrix.Format(m.OutputCov()))

	samples := make([]sim.Sample, 0, c.Steps)
	for i := 0; i < c.Steps; i++ {
		sample, err := s.Step()
		if err != nil {
			return err
		}
		samples = append(samples, sample)

		log.WithFields(log.Fields{
			"t":   sample.T,
			"x":   sample.X,
			"v":   sample.V,
			"z":   sample.Z,
			"inn": s.Filter().Innovation(),
			"s":   s.Filter().InnovationCov(),
		}).Debugf("step %d\nmu:\n%v\nsigma:\n%v", i, matrix.Format(sample.Mu.Vector()), matrix.Format(sample.Sigma.Dense()))
	}

	st := sim.Summarize(samples)

	log.WithFields(log.Fields{
		"steps":     st.Steps,
		"dropped":   st.Dropped,
		"pos_rmse":  st.PosRMSE,
		"vel_rmse":  st.VelRMSE,
		"meas_rmse": st.MeasRMSE,
		"mean_nees": st.MeanNEES,
		"singular":  st.Singular,
	}).Info("simulation finished")

	name, err := cmd.Flags().GetString("plot")
	if err != nil || name == "" || len(samples) == 0 {
		return err
	}

	plt, err := sim.NewTrackPlot(samples)
	if err != nil {
		return fmt.Errorf("failed to make plot: %w", err)
	}

	if err := plt.Save(10*vg.Inch, 6*vg.Inch, name); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", name, err)
	}
	log.Infof("plot saved to %s", name)

	return nil
}
