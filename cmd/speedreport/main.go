// Command speedreport replays a recorded landmark trace through a calibrated
// session and prints movement statistics in court meters.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"court-calibrate/internal/motion"
	"court-calibrate/internal/session"
	"court-calibrate/internal/version"
)

func main() {
	sessPath := flag.String("s", "", "Path to session file (.json)")
	tracePath := flag.String("t", "", "Path to landmark trace file (.json)")
	jsonOut := flag.Bool("json", false, "Emit the report as JSON")
	samplesOut := flag.String("samples", "", "Write per-frame samples to this JSON file")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("speedreport", version.String())
		return
	}
	if *sessPath == "" || *tracePath == "" {
		fmt.Println("Usage: speedreport -s <session.json> -t <trace.json> [-json] [-samples <out.json>]")
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	cfg := loadConfig(log)

	sess, err := session.LoadFromFile(*sessPath, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load session")
	}
	if !sess.Calibrated() {
		log.Fatal("session is not calibrated; mark more lines and re-save")
	}

	trace, err := motion.LoadTrace(*tracePath)
	if err != nil {
		log.WithError(err).Fatal("failed to load trace")
	}
	log.WithField("frames", len(trace.Frames)).Debug("loaded trace")

	tracker, err := motion.NewTracker(sess.Transformer(), cfg)
	if err != nil {
		log.WithError(err).Fatal("bad tracker config")
	}
	skipped := 0
	for _, f := range trace.Frames {
		if _, err := tracker.ProcessFrame(f); err != nil {
			if session.IsNotCalibrated(err) {
				log.WithError(err).Fatal("calibration lost mid-run")
			}
			skipped++
			log.WithError(err).WithField("timestamp", f.TimestampSec).Debug("skipping frame")
		}
	}
	if skipped > 0 {
		log.WithField("skipped", skipped).Warn("some frames could not be processed")
	}

	report := tracker.Report()
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.WithError(err).Fatal("failed to encode report")
		}
	} else {
		printReport(report)
	}

	if *samplesOut != "" {
		data, err := json.MarshalIndent(tracker.Samples(), "", "  ")
		if err != nil {
			log.WithError(err).Fatal("failed to encode samples")
		}
		if err := os.WriteFile(*samplesOut, data, 0644); err != nil {
			log.WithError(err).Fatal("failed to write samples")
		}
		log.WithField("path", *samplesOut).Info("wrote samples")
	}
}

func loadConfig(log *logrus.Logger) motion.Config {
	def := motion.DefaultConfig()
	viper.SetDefault("motion.smoothing_alpha", def.SmoothingAlpha)
	viper.SetDefault("motion.min_displacement_m", def.MinDisplacementMeters)
	viper.SetDefault("motion.max_speed_mps", def.MaxSpeedMps)

	viper.AddConfigPath(".")
	viper.SetConfigName("calibrate")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Warn("could not read config file")
		}
	}

	return motion.Config{
		SmoothingAlpha:        viper.GetFloat64("motion.smoothing_alpha"),
		MinDisplacementMeters: viper.GetFloat64("motion.min_displacement_m"),
		MaxSpeedMps:           viper.GetFloat64("motion.max_speed_mps"),
	}
}

func printReport(r motion.Report) {
	fmt.Println("=== Movement Report ===")
	fmt.Printf("Frames:    %d\n", r.Frames)
	fmt.Printf("Duration:  %.1f s\n", r.DurationSec)
	fmt.Printf("Distance:  %.1f m\n", r.DistanceMeters)
	fmt.Printf("Avg speed: %.2f m/s  (%.1f km/h, %.1f mph)\n",
		motion.Round2(r.AvgSpeedMps), r.AvgSpeedKmh(), r.AvgSpeedMph())
	fmt.Printf("Peak:      %.2f m/s  (%.1f km/h, %.1f mph)\n",
		motion.Round2(r.PeakSpeedMps), r.PeakSpeedKmh(), r.PeakSpeedMph())
}
