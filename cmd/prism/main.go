// prism renders the built-in scenes with a recursive Whitted-style ray tracer
// and writes the result to a local file, GCS, or S3.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"prism/camera"
	"prism/imagesink"
	"prism/render"
	"prism/scenepack"
	"prism/vmath/vec3"

	"contrib.go.opencensus.io/exporter/stackdriver"
	cloudtrace "github.com/GoogleCloudPlatform/opentelemetry-operations-go/exporter/trace"
	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"go.opencensus.io/stats/view"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var cmdRoot = &cobra.Command{
	Use:          "prism",
	Short:        "Recursive ray tracer",
	SilenceUsage: true,
}

var (
	cpuprofile string
	memprofile string

	monitoring           bool
	monitoringProject    string
	monitoringTraceRatio float64
)

func init() {
	cmdRoot.PersistentFlags().StringVar(&cpuprofile, "cpu-profile", "", "write cpu profile to `file`")
	cmdRoot.PersistentFlags().StringVar(&memprofile, "mem-profile", "", "write memory profile to `file`")
	cmdRoot.PersistentFlags().BoolVar(&monitoring, "monitoring", false, "Export render metrics and traces to Google Cloud?")
	cmdRoot.PersistentFlags().StringVar(&monitoringProject, "monitoring-project", "", "Override project used for monitoring integration.  If not specified, the project associated with Application Default Credentials is used.")
	cmdRoot.PersistentFlags().Float64Var(&monitoringTraceRatio, "monitoring-trace-ratio", 1, "What ratio of traces should be exported?")
}

var cmdScenes = &cobra.Command{
	Use:   "scenes",
	Short: "List the built-in scenes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range scenepack.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var (
	renderScene       string
	renderOutput      string
	renderWidth       int
	renderHeight      int
	renderWorkers     int
	renderSupersample int
	renderBounceLimit int
	renderEpsilon     float64

	cameraPosition vec3.T
	cameraLook     vec3.T
	cameraFOV      float64

	meshPath       string
	texturePath    string
	skyTexturePath string
)

func init() {
	defaults := render.DefaultOptions()

	f := cmdRender.Flags()
	f.StringVar(&renderScene, "scene", "spheres", "Built-in scene to render (see `prism scenes`)")
	f.StringVarP(&renderOutput, "output", "o", "output.png", "Where to write the image: a path, gs://bucket/object, or s3://bucket/key")
	f.IntVar(&renderWidth, "width", defaults.Width, "Output image columns")
	f.IntVar(&renderHeight, "height", defaults.Height, "Output image rows")
	f.IntVar(&renderWorkers, "workers", 0, "Shading goroutines; 0 means one per CPU")
	f.IntVar(&renderSupersample, "supersample", defaults.Supersample, "Rays per pixel along each axis")
	f.IntVar(&renderBounceLimit, "bounce-limit", defaults.BounceLimit, "Deepest bounce that still spawns reflection and refraction rays")
	f.Float64Var(&renderEpsilon, "epsilon", defaults.Epsilon, "Offset for rays leaving a surface")

	f.Var(newVec3Value(vec3.T{0, 1.2, 2}, &cameraPosition), "camera-position", "Camera centre as x,y,z")
	f.Var(newVec3Value(vec3.T{0, 0, -1}, &cameraLook), "camera-look", "Camera viewing direction as x,y,z")
	f.Float64Var(&cameraFOV, "fov", 90, "Horizontal field of view in degrees")

	f.StringVar(&meshPath, "mesh", "", "Mesh file (.obj, .stl, .ply) for the mesh scene")
	f.StringVar(&texturePath, "texture", "", "Image file for the textured scene")
	f.StringVar(&skyTexturePath, "sky-texture", "", "Optional image wrapped around the sky")
}

var cmdRender = &cobra.Command{
	Use:   "render",
	Short: "Render a built-in scene",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return withProfiling(func() error {
			return withMonitoring(ctx, func() error {
				return doRender(ctx)
			})
		})
	},
}

func doRender(ctx context.Context) error {
	cam, err := camera.NewPinhole(cameraPosition, cameraLook, cameraFOV)
	if err != nil {
		return fmt.Errorf("while building camera: %w", err)
	}

	s, err := scenepack.LoadScene(renderScene, &scenepack.Options{
		MeshPath:       meshPath,
		TexturePath:    texturePath,
		SkyTexturePath: skyTexturePath,
	})
	if err != nil {
		return err
	}

	opts := render.DefaultOptions()
	opts.Width = renderWidth
	opts.Height = renderHeight
	opts.Workers = renderWorkers
	opts.Supersample = renderSupersample
	opts.BounceLimit = renderBounceLimit
	opts.Epsilon = renderEpsilon
	opts.Label = renderScene
	opts.Progress = newProgressReporter(os.Stderr).Report

	start := time.Now()
	im, err := render.Render(ctx, s, cam, opts)
	if err != nil {
		return fmt.Errorf("while rendering scene %q: %w", renderScene, err)
	}
	glog.Infof("Rendered %q at %dx%d in %v", renderScene, im.ColSize, im.RowSize, time.Since(start))

	if err := imagesink.Save(ctx, im, renderOutput); err != nil {
		return fmt.Errorf("while saving image: %w", err)
	}
	return nil
}

func withProfiling(do func() error) error {
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := do(); err != nil {
		return err
	}

	if memprofile != "" {
		f, err := os.Create(memprofile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}
	return nil
}

func withMonitoring(ctx context.Context, do func() error) error {
	if !monitoring {
		return do()
	}

	traceOpts := []cloudtrace.Option{}
	if monitoringProject != "" {
		traceOpts = append(traceOpts, cloudtrace.WithProjectID(monitoringProject))
	}
	_, traceShutdown, err := cloudtrace.InstallNewPipeline(traceOpts, sdktrace.WithSampler(sdktrace.TraceIDRatioBased(monitoringTraceRatio)))
	if err != nil {
		return fmt.Errorf("while installing Cloud Trace pipeline: %w", err)
	}
	defer traceShutdown()

	exporter, err := stackdriver.NewExporter(stackdriver.Options{
		ProjectID:         monitoringProject,
		MetricPrefix:      "prism",
		ReportingInterval: 60 * time.Second,
		Context:           ctx,
	})
	if err != nil {
		return fmt.Errorf("while creating Stackdriver exporter: %w", err)
	}
	if err := view.Register(render.Views()...); err != nil {
		return fmt.Errorf("while registering render views: %w", err)
	}
	if err := exporter.StartMetricsExporter(); err != nil {
		return fmt.Errorf("while starting metrics exporter: %w", err)
	}
	defer exporter.Flush()
	defer exporter.StopMetricsExporter()

	return do()
}

func main() {
	cmdRoot.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	// glog complains unless the Go flag set reports itself parsed; pflag
	// fills in the actual values.
	flag.CommandLine.Parse([]string{})
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	cmdRoot.AddCommand(cmdRender, cmdScenes)
	if err := cmdRoot.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
