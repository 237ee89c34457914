package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/arisena/gopp/app/calc"
	"github.com/arisena/gopp/app/config"
	"github.com/arisena/gopp/app/rulesets/api"
	"github.com/arisena/gopp/app/store"
)

var (
	beatmapPath = kingpin.Arg("beatmap", "Path to a .osu file").Required().ExistingFile()
	modeFlag    = kingpin.Flag("mode", "Ruleset: osu, taiko, catch, mania").Short('m').String()
	modsFlag    = kingpin.Flag("mods", "Modifier acronyms, e.g. HDDT").Short('M').String()
	speedFlag   = kingpin.Flag("speed", "Custom rate for DT/HT class mods").Float64()
	accFlag     = kingpin.Flag("acc", "Target accuracy in percent").Short('a').Float64()
	missFlag    = kingpin.Flag("misses", "Miss count").Short('x').Int()
	comboFlag   = kingpin.Flag("combo", "Highest combo, 0 for full combo").Short('c').Int()
	legacyFlag  = kingpin.Flag("legacy-score", "Legacy total score, marks the score as classic").Int64()
	stepFlag    = kingpin.Flag("step", "Print the running star rating per object").Bool()
	watchFlag   = kingpin.Flag("watch", "Recalculate whenever the file changes").Short('w').Bool()
	dbFlag      = kingpin.Flag("database", "Sqlite results history, empty disables it").String()
)

func main() {
	kingpin.Version("gopp 1.0.0")
	kingpin.Parse()

	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	req := requestFromFlags(cfg)

	if err := calculateAndPrint(req, cfg); err != nil {
		return err
	}

	if *watchFlag {
		return watch(req, cfg)
	}

	return nil
}

func requestFromFlags(cfg *config.Config) calc.Request {
	req := calc.Request{
		Path:             *beatmapPath,
		Mods:             cfg.Mods,
		Speed:            *speedFlag,
		Accuracy:         cfg.Accuracy,
		Misses:           *missFlag,
		Combo:            *comboFlag,
		LegacyTotalScore: *legacyFlag,
	}

	mode := cfg.Mode
	if *modeFlag != "" {
		mode = *modeFlag
	}

	if parsed, err := api.ParseMode(mode); err == nil {
		req.Mode = parsed
	}

	if *modsFlag != "" {
		req.Mods = splitAcronyms(*modsFlag)
	}

	if *accFlag > 0 {
		req.Accuracy = *accFlag
	}

	return req
}

// splitAcronyms accepts both "HDDT" and "HD,DT".
func splitAcronyms(s string) []string {
	s = strings.ToUpper(strings.ReplaceAll(s, ",", ""))

	acronyms := make([]string, 0, len(s)/2)
	for i := 0; i+1 < len(s); i += 2 {
		acronyms = append(acronyms, s[i:i+2])
	}

	return acronyms
}

func calculateAndPrint(req calc.Request, cfg *config.Config) error {
	res, err := calc.Calculate(req)
	if err != nil {
		return err
	}

	printResult(res)

	if *stepFlag || cfg.Step {
		printSteps(req)
	}

	dbPath := cfg.Database
	if *dbFlag != "" {
		dbPath = *dbFlag
	}

	if dbPath != "" {
		if err := saveResult(dbPath, req.Path, res); err != nil {
			log.Println("unable to save result:", err)
		}
	}

	return nil
}

func printResult(res calc.Result) {
	fmt.Printf("%s - %s [%s] by %s\n", res.Artist, res.Title, res.Version, res.Creator)
	fmt.Printf("%s | %s | %s objects | drain %s\n",
		res.Mode, modsOrNone(res),
		humanize.Comma(int64(res.Attributes.ObjectCount)),
		humanize.SIWithDigits(res.DrainLength/1000, 1, "s"))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"", "Stars", "PP"})

	appendSkill := func(name string, stars, pp float64) {
		table.Append([]string{name, formatValue(stars), formatValue(pp)})
	}

	switch res.Mode {
	case api.Osu:
		appendSkill("Aim", res.Attributes.Aim, res.PP.Aim)
		appendSkill("Speed", res.Attributes.Speed, res.PP.Speed)
		appendSkill("Accuracy", 0, res.PP.Acc)
		appendSkill("Flashlight", res.Attributes.Flashlight, res.PP.Flashlight)
	case api.Taiko:
		appendSkill("Strain", res.Attributes.Total, res.PP.Aim)
		appendSkill("Accuracy", 0, res.PP.Acc)
	}

	table.SetFooter([]string{"Total", formatValue(res.Stars()), formatValue(res.PP.Total)})
	table.Render()

	fmt.Printf("Max combo: %s, scored combo: %s\n",
		humanize.Comma(int64(res.Attributes.MaxCombo)),
		humanize.Comma(int64(res.Statistics.MaxCombo)))
}

func modsOrNone(res calc.Result) string {
	if s := res.Mods.String(); s != "" {
		return s
	}

	return "NM"
}

func formatValue(v float64) string {
	if v <= 0 {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', 2, 64)
}

func printSteps(req calc.Request) {
	steps, err := calc.CalculateStep(req)
	if err != nil {
		log.Println("unable to calculate steps:", err)
		return
	}

	for i, attr := range steps {
		fmt.Printf("%6d: %.3f*\n", i+1, attr.Total)
	}
}

func saveResult(dbPath, beatmapPath string, res calc.Result) error {
	data, err := os.ReadFile(beatmapPath)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = st.Save(store.HashBeatmap(data), res)

	return err
}

func watch(req calc.Request, cfg *config.Config) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(req.Path); err != nil {
		return err
	}

	log.Println("watching", req.Path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := calculateAndPrint(req, cfg); err != nil {
					log.Println("calculation failed:", err)
				}
			}

			// editors replace the file instead of writing in place
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				if err := watcher.Add(req.Path); err != nil {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Println("watch error:", err)
		}
	}
}
