package crowd

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/usptact/BCCWords/bcc-golib/errors"
)

// Record is one crowd judgement: a worker assigned a label to a task.
// Gold is the ground-truth label when known, -1 otherwise; it is only
// ever used for evaluation or explicit clamping. Note the zero value
// of Gold means class 0, not "absent" — records built by hand must set
// Gold to -1 explicitly (LoadRecords and ParseRecord do this for you).
type Record struct {
	WorkerID string
	TaskID   string
	Label    int
	Text     string
	Gold     int
}

// LoadRecords reads tab-separated judgements from path:
//
//	WorkerId \t TaskId \t WorkerLabel \t BodyText [\t GoldLabel]
//
// Labels must be in [0, numClasses). Any malformed row fails the whole
// load with its line number.
func LoadRecords(path string, numClasses int) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening %s", path)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := ParseRecord(raw, numClasses)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("%s: no records", path)
	}
	return records, nil
}

// ParseRecord parses a single tab-separated judgement line.
func ParseRecord(line string, numClasses int) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 && len(fields) != 5 {
		return Record{}, errors.Errorf("expected 4 or 5 tab-separated fields, got %d", len(fields))
	}

	rec := Record{
		WorkerID: strings.TrimSpace(fields[0]),
		TaskID:   strings.TrimSpace(fields[1]),
		Text:     fields[3],
		Gold:     -1,
	}
	if rec.WorkerID == "" {
		return Record{}, errors.Errorf("empty worker id")
	}
	if rec.TaskID == "" {
		return Record{}, errors.Errorf("empty task id")
	}

	label, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Record{}, errors.Errorf("invalid worker label %q", fields[2])
	}
	if label < 0 || label >= numClasses {
		return Record{}, errors.Errorf("worker label %d out of range [0, %d)", label, numClasses)
	}
	rec.Label = label

	if len(fields) == 5 && strings.TrimSpace(fields[4]) != "" {
		gold, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil {
			return Record{}, errors.Errorf("invalid gold label %q", fields[4])
		}
		if gold < 0 || gold >= numClasses {
			return Record{}, errors.Errorf("gold label %d out of range [0, %d)", gold, numClasses)
		}
		rec.Gold = gold
	}
	return rec, nil
}
