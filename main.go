package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	inputFlag      = "input"
	outputFlag     = "output"
	resolutionFlag = "resolution"
	nameFlag       = "name"
	toleranceFlag  = "tolerance"
	bboxFlag       = "bbox"
	manifestFlag   = "manifest"
	modeFlag       = "mode"
)

var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "czml-pipeline",
	Short: "Convert boundary geometry to CZML polylines and optimize them",
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a GeoJSON FeatureCollection to a CZML polyline document",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runConvert(cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Simplify the polylines of a CZML document",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runOptimize(cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Extract the polylines of a CZML document that intersect a viewport",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runFilter(cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the conversion and optimization tables in one go",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBatch(cmd); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	convertCmd.Flags().StringP(inputFlag, "i", "", "input GeoJSON FeatureCollection")
	convertCmd.Flags().StringP(outputFlag, "o", "", "output CZML document")
	convertCmd.Flags().StringP(resolutionFlag, "r", "10m", `resolution label, e.g. "10m"`)
	convertCmd.Flags().String(nameFlag, "", "document name (overrides the resolution label)")
	if err := convertCmd.MarkFlagRequired(inputFlag); err != nil {
		log.Fatal(err)
	}
	if err := convertCmd.MarkFlagRequired(outputFlag); err != nil {
		log.Fatal(err)
	}

	optimizeCmd.Flags().StringP(inputFlag, "i", "", "input CZML document")
	optimizeCmd.Flags().StringP(outputFlag, "o", "", "output CZML document")
	optimizeCmd.Flags().Float64P(toleranceFlag, "t", 0, "simplification tolerance in radians")
	optimizeCmd.Flags().String(nameFlag, "", "document name for the optimized output")
	if err := optimizeCmd.MarkFlagRequired(inputFlag); err != nil {
		log.Fatal(err)
	}
	if err := optimizeCmd.MarkFlagRequired(outputFlag); err != nil {
		log.Fatal(err)
	}

	filterCmd.Flags().StringP(inputFlag, "i", "", "input CZML document")
	filterCmd.Flags().StringP(outputFlag, "o", "", "output CZML document (derived from the input when omitted)")
	filterCmd.Flags().String(bboxFlag, "", "viewport as minLon,minLat,maxLon,maxLat in degrees")
	filterCmd.Flags().String(nameFlag, "", "viewport name")
	if err := filterCmd.MarkFlagRequired(inputFlag); err != nil {
		log.Fatal(err)
	}
	if err := filterCmd.MarkFlagRequired(bboxFlag); err != nil {
		log.Fatal(err)
	}

	batchCmd.Flags().StringP(manifestFlag, "m", "", "JSON manifest replacing the default tables")
	batchCmd.Flags().String(modeFlag, "all", "which tables to run: convert, optimize or all")

	rootCmd.AddCommand(convertCmd, optimizeCmd, filterCmd, batchCmd)
}

func runConvert(cmd *cobra.Command) error {
	input, err := cmd.Flags().GetString(inputFlag)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return err
	}
	resolution, err := cmd.Flags().GetString(resolutionFlag)
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString(nameFlag)
	if err != nil {
		return err
	}
	if name == "" {
		name = DocumentName(resolution)
	}

	logger.Infof("converting %s -> %s", input, output)
	stats, err := ConvertFile(input, output, name, NewLogObserver(logger))
	if err != nil {
		return err
	}
	logger.Infof("✓ %s: %d features, %d polylines, %.1f MB",
		output, stats.Features, stats.Polylines, float64(stats.Bytes)/(1024*1024))
	return nil
}

func runOptimize(cmd *cobra.Command) error {
	input, err := cmd.Flags().GetString(inputFlag)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return err
	}
	tolerance, err := cmd.Flags().GetFloat64(toleranceFlag)
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString(nameFlag)
	if err != nil {
		return err
	}
	if tolerance < 0 {
		return errors.Errorf("tolerance %g: must be non-negative", tolerance)
	}

	logger.Infof("optimizing %s -> %s", input, output)
	logger.Infof("tolerance %g radians (%.4f degrees)", tolerance, degrees(tolerance))
	stats, err := OptimizeFile(input, output, tolerance, name, NewLogObserver(logger))
	if err != nil {
		return err
	}
	logger.Infof("✓ %s: %d -> %d points (%.1f%%), %d -> %d bytes (%.1f%%), avg %.1f points/line",
		output, stats.PointsBefore, stats.PointsAfter, stats.PointReduction(),
		stats.BytesBefore, stats.BytesAfter, stats.SizeReduction(), stats.AvgPointsPerLine())
	if stats.Skipped > 0 {
		logger.Warnf("%d packets skipped due to malformed positions", stats.Skipped)
	}
	return nil
}

func runFilter(cmd *cobra.Command) error {
	input, err := cmd.Flags().GetString(inputFlag)
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return err
	}
	bbox, err := cmd.Flags().GetString(bboxFlag)
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString(nameFlag)
	if err != nil {
		return err
	}

	arg := bbox
	if name != "" {
		arg = name + ":" + bbox
	}
	viewport, err := ParseViewport(arg)
	if err != nil {
		return err
	}

	stats, err := FilterFile(input, output, viewport, NewLogObserver(logger))
	if err != nil {
		return err
	}
	logger.Infof("✓ %s: kept %d of %d polylines", stats.Output, stats.Kept, stats.Total)
	return nil
}

func runBatch(cmd *cobra.Command) error {
	manifestPath, err := cmd.Flags().GetString(manifestFlag)
	if err != nil {
		return err
	}
	mode, err := cmd.Flags().GetString(modeFlag)
	if err != nil {
		return err
	}

	var m Manifest
	if manifestPath != "" {
		m, err = LoadManifest(manifestPath)
		if err != nil {
			return err
		}
	} else {
		m = DefaultManifest(os.Getenv("CZML_DATA_DIR"))
	}

	switch mode {
	case "convert":
		m.Optimize = nil
	case "optimize":
		m.Convert = nil
	case "all", "":
	default:
		return errors.Errorf("unknown mode %q: want convert, optimize or all", mode)
	}

	RunBatch(m, logger)
	return nil
}

func main() {
	_ = godotenv.Load(".env")

	l, err := NewLogger(os.Getenv("CZML_LOG_LEVEL"))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	logger = l
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
