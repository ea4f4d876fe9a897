package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
)

// CSV layout: name,url,scope,keywords,description with a header row.
// Keywords are semicolon-separated vocabulary terms.
const csvColumns = 5

// LoadCSVFile reads a catalog from a CSV file on disk.
func LoadCSVFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	cat, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return cat, nil
}

// LoadCSVObject reads a catalog CSV from a Cloud Storage object.
func LoadCSVObject(ctx context.Context, bucket, object string) (*Catalog, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	defer client.Close()

	reader, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening catalog object gs://%s/%s: %w", bucket, object, err)
	}
	defer reader.Close()

	cat, err := parseCSV(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog object gs://%s/%s: %w", bucket, object, err)
	}
	return cat, nil
}

func parseCSV(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = csvColumns

	var orgs []Organization
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		row++
		if row == 1 && strings.EqualFold(record[0], "name") {
			continue // header
		}

		org, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		orgs = append(orgs, org)
	}

	return New(orgs)
}

func parseRecord(record []string) (Organization, error) {
	name := strings.TrimSpace(record[0])
	if name == "" {
		return Organization{}, fmt.Errorf("missing organization name")
	}

	scope := Scope(strings.ToLower(strings.TrimSpace(record[2])))
	if scope != Campus && scope != External {
		return Organization{}, fmt.Errorf("organization %q: unknown scope %q", name, record[2])
	}

	var keywords []string
	for _, kw := range strings.Split(record[3], ";") {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		canonical, ok := Canonical(kw)
		if !ok {
			return Organization{}, fmt.Errorf("organization %q: keyword %q not in vocabulary", name, kw)
		}
		keywords = append(keywords, canonical)
	}

	return Organization{
		Name:        name,
		URL:         strings.TrimSpace(record[1]),
		Scope:       scope,
		Keywords:    keywords,
		Description: strings.TrimSpace(record[4]),
	}, nil
}
