package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"disastle/disaster"
	"disastle/forecast"
)

type DrawRecord struct {
	Round       int
	Disasters   int
	Probability float64
}

type DamageRecord struct {
	Round       int
	Player      string
	Connector   string // diamond, cross, moon or total
	Damage      float64
	Probability float64
}

type ExpectedRecord struct {
	Round  int
	Player string
	disaster.Damage
}

// DrawRecords flattens a draw distribution in outcome order.
func DrawRecords(round int, d forecast.Distribution[int]) []DrawRecord {
	records := make([]DrawRecord, 0, len(d))
	for _, n := range d.Keys() {
		records = append(records, DrawRecord{Round: round, Disasters: n, Probability: d[n]})
	}
	return records
}

// DamageRecords flattens the four damage distributions of one player.
func DamageRecords(round int, player string, d forecast.Damages) []DamageRecord {
	var records []DamageRecord
	for _, part := range []struct {
		name string
		dist forecast.Distribution[float64]
	}{{"diamond", d.Diamond}, {"cross", d.Cross}, {"moon", d.Moon}, {"total", d.Total}} {
		for _, dmg := range part.dist.Keys() {
			records = append(records, DamageRecord{
				Round:       round,
				Player:      player,
				Connector:   part.name,
				Damage:      dmg,
				Probability: part.dist[dmg],
			})
		}
	}
	return records
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteDrawRecords(records []DrawRecord) error {
	return w.create("draw_distribution.csv", func(f io.Writer) error {
		return WriteDrawRecords(f, records)
	})
}

func (w *Writer) WriteDamageRecords(records []DamageRecord) error {
	return w.create("damage_distribution.csv", func(f io.Writer) error {
		return WriteDamageRecords(f, records)
	})
}

func (w *Writer) WriteExpectedRecords(records []ExpectedRecord) error {
	return w.create("expected_damage.csv", func(f io.Writer) error {
		return WriteExpectedRecords(f, records)
	})
}

func (w *Writer) create(name string, write func(io.Writer) error) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()
	return write(f)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func WriteDrawRecords(out io.Writer, records []DrawRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Round),
			strconv.Itoa(record.Disasters),
			formatFloat(record.Probability),
		})
	}
	return writeCSV(out, "draw", []string{"round", "disasters", "probability"}, rows)
}

func WriteDamageRecords(out io.Writer, records []DamageRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Round),
			record.Player,
			record.Connector,
			formatFloat(record.Damage),
			formatFloat(record.Probability),
		})
	}
	return writeCSV(out, "damage", []string{"round", "player", "connector", "damage", "probability"}, rows)
}

func WriteExpectedRecords(out io.Writer, records []ExpectedRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Round),
			record.Player,
			formatFloat(record.Diamond),
			formatFloat(record.Cross),
			formatFloat(record.Moon),
			formatFloat(record.Total),
		})
	}
	return writeCSV(out, "expected damage", []string{"round", "player", "diamond", "cross", "moon", "total"}, rows)
}

func writeCSV(out io.Writer, kind string, header []string, rows [][]string) error {
	writer := csv.NewWriter(out)

	err := writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", kind, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
