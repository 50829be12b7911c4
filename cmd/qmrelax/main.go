package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"qmrelax/internal/models"
	"qmrelax/pkg/config"
	"qmrelax/pkg/dicomio"
	"qmrelax/pkg/segmentation"
	"qmrelax/pkg/stats"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "qmrelax.yaml", "Path to YAML configuration file")
	t1Dir := flag.String("t1", "", "Directory containing the T1 map DICOM series")
	t2Dir := flag.String("t2", "", "Directory containing the T2 map DICOM series")
	m0Dir := flag.String("m0", "", "Directory containing the M0 map DICOM series")
	ipDir := flag.String("ip", "", "Directory containing the inner-product map DICOM series")
	masksDir := flag.String("masks", "", "Directory with one mask series subdirectory per tissue")
	unitFlag := flag.String("unit", "", "Unit for T1/T2 values (overrides config)")
	sortFlag := flag.String("sort", "", "Tissue sort mode: none, increasing or decreasing (overrides config)")
	outputPath := flag.String("output", "", "Path for the YAML statistics report (default: stdout)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Validate inputs
	if *masksDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if !cfg.Output.Verbose {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	unitName := cfg.Analysis.Unit
	if *unitFlag != "" {
		unitName = *unitFlag
	}
	unit, err := segmentation.ParseUnit(unitName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid unit")
	}

	sortName := cfg.Analysis.SortMode
	if *sortFlag != "" {
		sortName = *sortFlag
	}
	mode, err := segmentation.ParseSortMode(sortName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sort mode")
	}

	// Load whichever parameter maps were supplied; missing maps are
	// skipped during extraction
	params := make(map[string]*models.Volume)
	for name, dir := range map[string]string{"T1": *t1Dir, "T2": *t2Dir, "M0": *m0Dir, "IP": *ipDir} {
		if dir == "" {
			continue
		}
		volume, err := dicomio.LoadVolume(dir)
		if err != nil {
			log.Fatal().Err(err).Str("parameter", name).Msg("failed to load parameter map")
		}
		log.Info().Str("parameter", name).
			Int("width", volume.Width).Int("height", volume.Height).Int("depth", volume.Depth).
			Msg("loaded parameter map")
		params[name] = volume
	}
	if len(params) == 0 {
		log.Fatal().Msg("no parameter maps supplied")
	}

	masks, err := loadMasks(*masksDir, cfg.Input.MaskThreshold, cfg.Colors)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load tissue masks")
	}

	seg, err := segmentation.ExtractSegmentation(params, masks, unit, mode)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to extract segmentation")
	}

	for _, tissue := range seg.Tissues() {
		log.Info().Str("tissue", tissue.Name).Int("volume", tissue.Volume).
			Str("color", tissue.Color).Msg("extracted tissue ROI")
	}

	statistics := stats.Compute(seg)

	report, err := yaml.Marshal(statistics)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal statistics report")
	}

	if *outputPath == "" {
		fmt.Print(string(report))
		return
	}
	if err := os.WriteFile(*outputPath, report, 0644); err != nil {
		log.Fatal().Err(err).Msg("failed to write statistics report")
	}
	log.Info().Str("path", *outputPath).Msg("statistics report written")
}

// loadMasks reads one mask series per subdirectory of dir. Subdirectory
// names become tissue names; alphabetical order fixes the pre-sort
// tissue order. Configured color overrides are attached here so they
// take effect at ROI construction.
func loadMasks(dir string, threshold float64, colors map[string]string) ([]segmentation.LabeledMask, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading masks directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no mask subdirectories found in %s", dir)
	}
	sort.Strings(names)

	masks := make([]segmentation.LabeledMask, 0, len(names))
	for _, name := range names {
		mask, err := dicomio.LoadMask(filepath.Join(dir, name), threshold)
		if err != nil {
			return nil, fmt.Errorf("loading mask for tissue %q: %w", name, err)
		}
		masks = append(masks, segmentation.LabeledMask{Name: name, Mask: mask, Color: colors[name]})
	}
	return masks, nil
}
