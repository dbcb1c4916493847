// Command genmock writes a synthetic attendee roster for local runs and demos.
// The output is deterministic for a given seed and mixes in the messy values
// real rosters contain: short and long zipcodes, phone numbers in several
// formats, and an occasional unparsable registration time.
//
// Usage:
//
//	go run ./cmd/genmock -rows 200 -out data/mock/event_attendees.csv
//	go run ./cmd/genmock -rows 200 -out data/mock/event_attendees.xlsx
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/xuri/excelize/v2"

	"github.com/PivtoranisV/event-manager/internal/domain"
)

var header = []string{"", "RegDate", "first_Name", "last_Name", "Email_Address", "HomePhone", "Street", "City", "State", "Zipcode"}

var (
	firstNames = []string{"Allison", "SArah", "Sarah", "Jennifer", "Michael", "Aya", "Mary Kate", "Audrey", "Chris", "Eli"}
	lastNames  = []string{"Nguyen", "Hankins", "Xx", "Zielinski", "Brown", "Fuller", "Curry", "Hasegan", "Mcclure", "Walker"}
	places     = []struct{ city, state, zip string }{
		{"Washington", "DC", "20010"},
		{"Saint Petersburg", "FL", "33703"},
		{"Jackson", "MS", "39211"},
		{"Boston", "MA", "2111"},
		{"Denver", "CO", "80203"},
		{"Princeton", "NJ", "8540"},
		{"Ithaca", "NY", "148504"},
		{"Cambridge", "MA", ""},
	}
)

// clock anchors generated registrations so fixtures are reproducible.
var clock clockwork.Clock = clockwork.NewFakeClockAt(time.Date(2008, time.November, 9, 0, 0, 0, 0, time.UTC))

func main() {
	rows := flag.Int("rows", 20, "number of attendee rows to generate")
	out := flag.String("out", "", "output path (.csv or .xlsx)")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" || *rows < 0 {
		flag.Usage()
		os.Exit(2)
	}

	records := generate(*rows, *seed)
	if err := write(*out, records); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d rows to %s", len(records), *out)
}

// generate returns n roster rows, excluding the header.
func generate(n int, seed uint64) [][]string {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := clock.Now()

	records := make([][]string, 0, n)
	for i := 1; i <= n; i++ {
		first := firstNames[rng.IntN(len(firstNames))]
		last := lastNames[rng.IntN(len(lastNames))]
		place := places[rng.IntN(len(places))]

		reg := base.Add(time.Duration(rng.IntN(7*24*60)) * time.Minute)
		regDate := reg.Format(domain.RegistrationLayout)
		if rng.IntN(25) == 0 {
			regDate = "not a date"
		}

		records = append(records, []string{
			strconv.Itoa(i),
			regDate,
			first,
			last,
			strings.ToLower(strings.ReplaceAll(first, " ", "")) + "@jumpstartlab.com",
			phone(rng),
			fmt.Sprintf("%d %s St", 100+rng.IntN(9900), last),
			place.city,
			place.state,
			place.zip,
		})
	}
	return records
}

// phone returns a number in one of the formats seen in real rosters.
func phone(rng *rand.Rand) string {
	area, exch, line := 200+rng.IntN(800), 200+rng.IntN(800), rng.IntN(10000)
	switch rng.IntN(6) {
	case 0:
		return fmt.Sprintf("%d%d%04d", area, exch, line)
	case 1:
		return fmt.Sprintf("%d-%d-%04d", area, exch, line)
	case 2:
		return fmt.Sprintf("(%d)%d-%04d", area, exch, line)
	case 3:
		return fmt.Sprintf("1%d.%d.%04d", area, exch, line)
	case 4:
		return fmt.Sprintf("9%d%d%04d", area, exch, line)
	default:
		return strconv.Itoa(rng.IntN(100000))
	}
}

func write(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return writeXLSX(path, records)
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := append([][]string{header}, records...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return f.SaveAs(path)
}
