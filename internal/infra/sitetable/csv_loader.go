package sitetable

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"minmod/internal/domain/entity"
	"minmod/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
)

// SnapshotHeader is the column layout of a site table snapshot.
var SnapshotHeader = []string{
	"id", "name", "lat", "lon", "tonnage", "grade",
	"contained_metal", "deposit_type", "commodity", "country",
}

var requiredColumns = []string{"id", "lat", "lon", "tonnage", "grade"}

// CSVLoader reads and writes site table snapshots in a blob bucket.
type CSVLoader struct {
	bucket *blob.Bucket
	owned  bool
}

// NewCSVLoader wraps an already opened bucket. Close leaves it open.
func NewCSVLoader(bucket *blob.Bucket) *CSVLoader {
	return &CSVLoader{bucket: bucket}
}

// OpenCSVLoader opens the bucket at url, e.g. "file:///data" or "gs://minmod-snapshots".
func OpenCSVLoader(ctx context.Context, url string) (*CSVLoader, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", url)
	}

	return &CSVLoader{bucket: bucket, owned: true}, nil
}

// Close releases a bucket opened by OpenCSVLoader.
func (l *CSVLoader) Close() error {
	if !l.owned {
		return nil
	}

	return errors.WithStack(l.bucket.Close())
}

// Load reads the snapshot stored under key.
// Columns are matched by header name; id, lat, lon, tonnage and grade are required.
// Rows failing validation are dropped and counted like backend rows.
func (l *CSVLoader) Load(ctx context.Context, key string) (entity.SiteTable, error) {
	r, err := l.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return entity.SiteTable{}, errors.Wrapf(err, "open snapshot %s", key)
	}
	defer r.Close()

	t, err := ReadSitesCSV(r)
	if err != nil {
		return entity.SiteTable{}, errors.Wrapf(err, "read snapshot %s", key)
	}

	return t, nil
}

// Save writes sites under key in snapshot layout.
func (l *CSVLoader) Save(ctx context.Context, key string, sites []entity.SiteRecord) error {
	w, err := l.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: "text/csv"})
	if err != nil {
		return errors.Wrapf(err, "create snapshot %s", key)
	}

	if err := WriteSitesCSV(w, sites); err != nil {
		_ = w.Close()

		return err
	}

	return errors.Wrapf(w.Close(), "close snapshot %s", key)
}

// ReadSitesCSV parses a snapshot stream.
func ReadSitesCSV(src io.Reader) (entity.SiteTable, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.NewSiteTable(0), nil
	}
	if err != nil {
		return entity.SiteTable{}, errors.WithStack(err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return entity.SiteTable{}, errors.Errorf("snapshot header lacks column %q", name)
		}
	}

	t := entity.NewSiteTable(0)

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return entity.SiteTable{}, errors.WithStack(readErr)
		}
		t.Received++

		site, reason, ok := parseSite(cols, record)
		if !ok {
			t.Drop(reason)

			continue
		}
		t.Sites = append(t.Sites, site)
	}

	return t, nil
}

func parseSite(cols map[string]int, record []string) (entity.SiteRecord, entity.DropReason, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	latStr, lonStr := field("lat"), field("lon")
	if latStr == "" || lonStr == "" {
		return entity.SiteRecord{}, entity.DropMissingLocation, false
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return entity.SiteRecord{}, entity.DropInvalidLocation, false
	}

	tonnage, reason, ok := parseMeasure(field("tonnage"), entity.DropMissingTonnage, entity.DropInvalidTonnage)
	if !ok {
		return entity.SiteRecord{}, reason, false
	}
	grade, reason, ok := parseMeasure(field("grade"), entity.DropMissingGrade, entity.DropInvalidGrade)
	if !ok {
		return entity.SiteRecord{}, reason, false
	}

	site := entity.SiteRecord{
		ID:          field("id"),
		Name:        field("name"),
		Lat:         lat,
		Lon:         lon,
		Tonnage:     tonnage,
		Grade:       grade,
		DepositType: field("deposit_type"),
		Commodity:   strings.ToLower(field("commodity")),
		Country:     field("country"),
	}

	var reported *float64
	if v, err := strconv.ParseFloat(field("contained_metal"), 64); err == nil {
		reported = &v
	}
	site.ContainedMetal = containedMetal(reported, tonnage, grade)
	if site.Name == "" {
		site.Name = site.ID
	}

	if reason, ok := validate(site); !ok {
		return entity.SiteRecord{}, reason, false
	}

	return site, "", true
}

func parseMeasure(s string, missing, invalid entity.DropReason) (float64, entity.DropReason, bool) {
	if s == "" {
		return 0, missing, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, invalid, false
	}

	return v, "", true
}

// WriteSitesCSV writes sites in snapshot layout.
func WriteSitesCSV(w io.Writer, sites []entity.SiteRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SnapshotHeader); err != nil {
		return errors.WithStack(err)
	}

	for _, s := range sites {
		record := []string{
			s.ID,
			s.Name,
			formatFloat(s.Lat),
			formatFloat(s.Lon),
			formatFloat(s.Tonnage),
			formatFloat(s.Grade),
			formatFloat(s.ContainedMetal),
			s.DepositType,
			s.Commodity,
			s.Country,
		}
		if err := cw.Write(record); err != nil {
			return errors.WithStack(err)
		}
	}

	cw.Flush()

	return errors.WithStack(cw.Error())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
