package main

import (
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/unklstewy/flapsim/pkg/airflow"
	"github.com/unklstewy/flapsim/pkg/airfoil"
	"github.com/unklstewy/flapsim/pkg/config"
	"github.com/unklstewy/flapsim/pkg/flap"
	"github.com/unklstewy/flapsim/pkg/render"
)

var (
	deploymentDeg float64
	flowFrames    int
	flowDevice    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a PNG snapshot of every device",
	Long: `Draw every device at a fixed deployment angle to images/<device>.png.

With --frames N an airflow snapshot of one device is also written to
images/<device>_airflow.png after N simulation frames.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runRender(cfg, deploymentDeg, flowDevice, flowFrames)
		return err
	},
}

func init() {
	renderCmd.Flags().Float64Var(&deploymentDeg, "deployment", 20, "Deployment angle in degrees")
	renderCmd.Flags().IntVar(&flowFrames, "frames", 0, "Simulate this many airflow frames and save a snapshot")
	renderCmd.Flags().StringVar(&flowDevice, "device", "plain", "Device for the airflow snapshot")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cfg *config.Config, deployment float64, device string, frames int) ([]string, error) {
	spec, err := cfg.Airfoil.Spec()
	if err != nil {
		return nil, err
	}

	dir := cfg.Output.ImagesDir()
	paths, err := render.SaveVariantSnapshots(dir, spec, deployment*airfoil.DegreesToRadians,
		cfg.Output.RenderWidth, cfg.Output.RenderHeight)
	if err != nil {
		return nil, err
	}
	log.Printf("Wrote %d device snapshots to %s", len(paths), dir)

	if frames <= 0 {
		return paths, nil
	}

	v, err := flap.Parse(device)
	if err != nil {
		return nil, err
	}
	session, err := airflow.NewSession(cfg.Viewer.Airflow(), spec, v)
	if err != nil {
		return nil, err
	}
	for i := 0; i < frames; i++ {
		session.Step()
	}

	path := filepath.Join(dir, v.FileStem()+"_airflow.png")
	if err := render.SaveSnapshot(session, cfg.Output.RenderWidth, cfg.Output.RenderHeight, path); err != nil {
		return nil, err
	}
	log.Printf("Wrote airflow snapshot of %s after %d frames (deployment %+.1f°)",
		v, frames, session.Deployment()*airfoil.RadiansToDegrees)
	return append(paths, path), nil
}
