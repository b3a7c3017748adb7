// Command calibrate solves a saved calibration session and reports fit
// quality, optionally rendering the projected court onto a video frame.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gocv.io/x/gocv"

	_ "golang.org/x/image/tiff"

	"court-calibrate/internal/overlay"
	"court-calibrate/internal/session"
	"court-calibrate/internal/video"
	"court-calibrate/internal/version"
)

func main() {
	sessPath := flag.String("s", "", "Path to session file (.json)")
	videoPath := flag.String("video", "", "Path to source video for overlay rendering")
	framePath := flag.String("frame", "", "Path to a still frame image instead of a video")
	frameIndex := flag.Int("frame-index", 0, "Frame index to grab from the video")
	outPath := flag.String("o", "", "Write overlay image to this path")
	verbose := flag.Bool("v", false, "Verbose logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("calibrate", version.String())
		return
	}
	if *sessPath == "" {
		fmt.Println("Usage: calibrate -s <session.json> [-video <clip> | -frame <image>] [-o <overlay.png>]")
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	loadConfig(log)

	sess, err := session.LoadFromFile(*sessPath, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load session")
	}

	printReport(sess)

	if *outPath == "" {
		return
	}

	var frame gocv.Mat
	switch {
	case *videoPath != "":
		info, err := video.Probe(*videoPath)
		if err != nil {
			log.WithError(err).Fatal("failed to probe video")
		}
		log.WithFields(logrus.Fields{
			"resolution": fmt.Sprintf("%dx%d", info.Width, info.Height),
			"fps":        info.FPS,
			"frames":     info.Frames,
		}).Info("probed video")
		checkResolution(log, sess, info.Width, info.Height)
		frame, err = video.GrabFrame(*videoPath, *frameIndex)
		if err != nil {
			log.WithError(err).Fatal("failed to grab frame")
		}
	case *framePath != "":
		w, h, err := probeImage(*framePath)
		if err != nil {
			log.WithError(err).Fatal("failed to read frame image")
		}
		checkResolution(log, sess, w, h)
		frame = gocv.IMRead(*framePath, gocv.IMReadColor)
		if frame.Empty() {
			log.Fatalf("could not decode %s", *framePath)
		}
	default:
		log.Fatal("-o requires -video or -frame")
	}
	defer frame.Close()

	opts := overlay.DefaultOptions()
	opts.DrawLabels = viper.GetBool("overlay.labels")
	opts.DrawNet = viper.GetBool("overlay.net")
	opts.LineThickness = viper.GetInt("overlay.thickness")
	r := overlay.NewRenderer(sess, opts)

	if res, ok := sess.CurrentResult(); ok {
		overlay.DrawQualityBanner(&frame, fmt.Sprintf("%s  %.0f%%  %.1fpx", res.Quality, res.AccuracyPercent, res.ReprojectionErrorPx))
	}
	if err := r.RenderToFile(frame, *outPath); err != nil {
		log.WithError(err).Fatal("failed to render overlay")
	}
	log.WithField("path", *outPath).Info("wrote overlay")
}

func loadConfig(log *logrus.Logger) {
	viper.SetDefault("overlay.labels", true)
	viper.SetDefault("overlay.net", true)
	viper.SetDefault("overlay.thickness", 2)

	viper.AddConfigPath(".")
	viper.SetConfigName("calibrate")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.WithError(err).Warn("could not read config file")
		}
	}
}

func printReport(sess *session.Session) {
	model := sess.Model()

	fmt.Printf("=== Calibration: %s ===\n", model.Sport)
	fmt.Printf("Court:   %.2fm x %.2fm\n", model.WidthMeters, model.LengthMeters)
	if cam, ok := sess.Camera(); ok {
		fmt.Printf("Camera:  %s edge, %.1fm out, %.1fm up\n", cam.Edge, cam.DistanceMeters, cam.HeightMeters)
	}
	fmt.Printf("Lines:   %d marked\n", sess.LineCount())

	res, ok := sess.CurrentResult()
	if !ok {
		fmt.Println("Status:  not calibrated")
		if err := sess.LastError(); err != nil {
			fmt.Printf("Reason:  %v\n", err)
		}
		return
	}
	if sess.Stale() {
		fmt.Println("Status:  STALE (last solve failed, showing previous result)")
	}
	fmt.Printf("\nQuality:      %s\n", res.Quality)
	fmt.Printf("Accuracy:     %.0f%%\n", res.AccuracyPercent)
	fmt.Printf("Reproj error: %.2f px\n", res.ReprojectionErrorPx)
	if res.Example != nil {
		fmt.Printf("\nExample: pixel (%.2f, %.2f) -> court (%.2fm, %.2fm), ~%.0f px/m\n",
			res.Example.ImagePoint.X, res.Example.ImagePoint.Y,
			res.Example.WorldPoint.X, res.Example.WorldPoint.Y,
			res.Example.PixelsPerMeter)
	}
}

// checkResolution warns when the frame being rendered does not match the
// resolution the lines were marked against.
func checkResolution(log *logrus.Logger, sess *session.Session, w, h int) {
	for _, c := range sess.Lines() {
		if c.NativeWidth != w || c.NativeHeight != h {
			log.WithFields(logrus.Fields{
				"line":    c.LineID,
				"marked":  fmt.Sprintf("%dx%d", c.NativeWidth, c.NativeHeight),
				"current": fmt.Sprintf("%dx%d", w, h),
			}).Warn("frame resolution differs from marked resolution")
			return
		}
	}
}

func probeImage(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
