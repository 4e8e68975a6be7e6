// Reelscope - Short-Form Video Analytics and Discovery API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelscope

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelscope/internal/logging"
	"github.com/tomtom215/reelscope/internal/metrics"
)

// Google Drive URL patterns for embed playback and thumbnails. These are
// constructed once at load time and passed through the card formatter
// unmodified.
const (
	driveThumbnailPattern = "https://drive.google.com/thumbnail?id=%s&sz=w400"
	drivePreviewPattern   = "https://drive.google.com/file/d/%s/preview"
)

// LoadOptions names the artifact files produced by the offline analysis
// pipeline. VideosPath is required; everything else degrades gracefully
// when absent.
type LoadOptions struct {
	// VideosPath is the main video table (parquet). Required.
	VideosPath string

	// TopicsPath maps topic ids to topic names (JSON object).
	TopicsPath string

	// DocTopicsPath assigns a topic id per video (CSV: Id, Topic).
	DocTopicsPath string

	// HashtagStatsPath holds per-tag aggregate stats (parquet).
	HashtagStatsPath string

	// VidlinkMapPath maps video files to Drive file ids (CSV).
	VidlinkMapPath string

	// EventsPath holds clustered event summaries (CSV).
	EventsPath string
}

// HashtagStat is one row of the pre-computed hashtag aggregate artifact.
type HashtagStat struct {
	Tag            string
	Count          int64
	MeanEngagement float64
}

// EventRecord is one clustered event summary row as loaded from the events
// artifact. Member ids and hashtags stay raw here; the events service
// parses them with the strict list parser.
type EventRecord struct {
	EventID          string
	Category         string
	ClusterSize      int
	TimeStart        string
	TimeEnd          string
	SummaryHighlevel string
	SummaryText      string
	MemberIDsRaw     string
	TopHashtagsRaw   string
}

// Artifacts bundles everything the API serves: the video table plus the
// co-loaded topic, hashtag, and event artifacts.
type Artifacts struct {
	Table        *Table
	Topics       map[string]string
	HashtagStats []HashtagStat
	Events       []EventRecord
}

// Load ingests all artifacts through an in-memory DuckDB instance and
// returns the enriched, immutable dataset. DuckDB handles the parquet and
// CSV decoding; joins and URL construction happen in Go.
//
// A missing or unreadable videos artifact is fatal (ErrNotLoaded wrapped
// with detail); optional artifacts log a warning and are skipped.
func Load(ctx context.Context, opts LoadOptions) (*Artifacts, error) {
	logger := logging.With().Str("component", "dataset").Logger()

	if opts.VideosPath == "" {
		return nil, fmt.Errorf("%w: no videos artifact configured", ErrNotLoaded)
	}
	if _, err := os.Stat(opts.VideosPath); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotLoaded, opts.VideosPath, err)
	}

	conn, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory duckdb: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Error closing loader database")
		}
	}()

	start := time.Now()
	records, err := loadVideos(ctx, conn, opts.VideosPath)
	if err != nil {
		metrics.DatasetLoadErrors.WithLabelValues("videos").Inc()
		return nil, fmt.Errorf("%w: %v", ErrNotLoaded, err)
	}
	metrics.DatasetLoadDuration.WithLabelValues("videos").Observe(time.Since(start).Seconds())
	metrics.DatasetVideosLoaded.Set(float64(len(records)))

	topics := loadTopics(opts.TopicsPath, logger)
	applyDocTopics(ctx, conn, opts.DocTopicsPath, records, topics, logger)
	applyVidlinks(ctx, conn, opts.VidlinkMapPath, records, logger)

	arts := &Artifacts{
		Table:        New(records),
		Topics:       topics,
		HashtagStats: loadHashtagStats(ctx, conn, opts.HashtagStatsPath, logger),
		Events:       loadEvents(ctx, conn, opts.EventsPath, logger),
	}

	logger.Info().
		Int("videos", arts.Table.Len()).
		Int("topics", len(arts.Topics)).
		Int("hashtag_stats", len(arts.HashtagStats)).
		Int("events", len(arts.Events)).
		Msg("Dataset loaded")

	return arts, nil
}

// loadVideos reads the main video table. Every column is read generically
// and coerced in Go so schema drift (string-typed counts, missing columns)
// degrades to zero values instead of failing the load.
func loadVideos(ctx context.Context, conn *sql.DB, path string) ([]Record, error) {
	rows, err := queryFile(ctx, conn, "read_parquet", path)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := Record{
			ID:             CoerceInt64(row.str("Id")),
			Caption:        row.str("caption"),
			Text:           row.str("text"),
			FullText:       row.str("full_text"),
			OwnerUsername:  row.str("owner_username"),
			Category:       row.str("category"),
			HashtagsRaw:    row.str("hashtags"),
			ViewCount:      CoerceInt64(row.str("view_count")),
			LikeCount:      CoerceInt64(row.str("like_count")),
			EngagementRate: CoerceFloat(row.str("engagement_rate")),
			Timestamp:      row.time("timestamp"),
			DisplayURL:     CleanText(row.str("display_url")),
		}
		records = append(records, rec)
	}
	return records, nil
}

// loadTopics reads the topic id to name mapping.
func loadTopics(path string, logger zerolog.Logger) map[string]string {
	topics := map[string]string{}
	if path == "" {
		return topics
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Skipping topics artifact")
		return topics
	}
	if err := json.Unmarshal(data, &topics); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Malformed topics artifact")
		return map[string]string{}
	}
	return topics
}

// applyDocTopics joins per-video topic assignments onto the records.
func applyDocTopics(ctx context.Context, conn *sql.DB, path string, records []Record, topics map[string]string, logger zerolog.Logger) {
	if path == "" {
		return
	}
	rows, err := queryFile(ctx, conn, "read_csv_auto", path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Skipping doc topics artifact")
		return
	}

	topicByID := make(map[int64]string, len(rows))
	for _, row := range rows {
		id := CoerceInt64(row.str("Id"))
		topicID := strings.TrimSpace(row.str("Topic"))
		// Topic ids arrive float-formatted from some exports ("3.0").
		topicID = strings.TrimSuffix(topicID, ".0")
		if name, ok := topics[topicID]; ok {
			topicByID[id] = name
		}
	}

	for i := range records {
		if name, ok := topicByID[records[i].ID]; ok {
			records[i].TopicName = name
		}
	}
}

// applyVidlinks joins Drive file ids onto the records and constructs embed
// and thumbnail URLs. The numeric video id is the leading digit run of the
// file name ("0249.mp4" -> 249).
func applyVidlinks(ctx context.Context, conn *sql.DB, path string, records []Record, logger zerolog.Logger) {
	if path == "" {
		return
	}
	rows, err := queryFile(ctx, conn, "read_csv_auto", path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Skipping vidlink artifact")
		return
	}

	fileByID := make(map[int64]string, len(rows))
	for _, row := range rows {
		name := row.str("name")
		fileID := CleanText(row.str("id"))
		if fileID == "" {
			continue
		}
		videoID, ok := leadingDigits(name)
		if !ok {
			continue
		}
		fileByID[videoID] = fileID
	}

	for i := range records {
		fileID, ok := fileByID[records[i].ID]
		if !ok {
			continue
		}
		records[i].EmbedURL = fmt.Sprintf(drivePreviewPattern, fileID)
		records[i].ThumbnailURL = fmt.Sprintf(driveThumbnailPattern, fileID)
	}
}

// loadHashtagStats reads the pre-computed hashtag aggregates.
func loadHashtagStats(ctx context.Context, conn *sql.DB, path string, logger zerolog.Logger) []HashtagStat {
	if path == "" {
		return nil
	}
	rows, err := queryFile(ctx, conn, "read_parquet", path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Skipping hashtag stats artifact")
		return nil
	}

	stats := make([]HashtagStat, 0, len(rows))
	for _, row := range rows {
		tag := CleanText(row.str("tag"))
		if tag == "" {
			continue
		}
		stats = append(stats, HashtagStat{
			Tag:            tag,
			Count:          CoerceInt64(row.str("count")),
			MeanEngagement: CoerceFloat(row.str("mean_eng")),
		})
	}
	return stats
}

// loadEvents reads the clustered event summaries.
func loadEvents(ctx context.Context, conn *sql.DB, path string, logger zerolog.Logger) []EventRecord {
	if path == "" {
		return nil
	}
	rows, err := queryFile(ctx, conn, "read_csv_auto", path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Skipping events artifact")
		return nil
	}

	events := make([]EventRecord, 0, len(rows))
	for _, row := range rows {
		events = append(events, EventRecord{
			EventID:          row.str("event_id"),
			Category:         CleanText(row.str("category")),
			ClusterSize:      int(CoerceInt64(row.str("cluster_size"))),
			TimeStart:        row.str("time_start"),
			TimeEnd:          row.str("time_end"),
			SummaryHighlevel: row.str("summary_highlevel"),
			SummaryText:      row.str("summary_text"),
			MemberIDsRaw:     row.str("member_ids"),
			TopHashtagsRaw:   row.str("top_hashtags"),
		})
	}
	return events
}

// rowmap is a generically scanned result row keyed by column name.
type rowmap map[string]interface{}

// str stringifies a column value, absent columns and NULLs included.
func (m rowmap) str(col string) string {
	v, ok := m[col]
	if !ok || v == nil {
		return ""
	}
	switch tv := v.(type) {
	case string:
		return tv
	case []byte:
		return string(tv)
	case time.Time:
		return tv.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(tv)
	default:
		return fmt.Sprintf("%v", tv)
	}
}

// time extracts a column as a timestamp, accepting native TIMESTAMP values,
// RFC3339 text, and unix epoch seconds. Anything else is nil.
func (m rowmap) time(col string) *time.Time {
	v, ok := m[col]
	if !ok || v == nil {
		return nil
	}
	if ts, ok := v.(time.Time); ok {
		return &ts
	}
	s := m.str(col)
	if isAbsentText(s) {
		return nil
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts
	}
	if ts, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return &ts
	}
	if epoch, err := strconv.ParseFloat(s, 64); err == nil && epoch > 0 {
		ts := time.Unix(int64(epoch), 0).UTC()
		return &ts
	}
	return nil
}

// queryFile reads an entire artifact through a DuckDB table function
// (read_parquet / read_csv_auto) into generic row maps.
func queryFile(ctx context.Context, conn *sql.DB, fn, path string) ([]rowmap, error) {
	query := fmt.Sprintf("SELECT * FROM %s(%s)", fn, quoteLiteral(path)) //nolint:gosec // fn is a fixed identifier, path is quoted
	rows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", path, err)
	}

	var out []rowmap
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", path, err)
		}
		row := make(rowmap, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", path, err)
	}
	return out, nil
}

// quoteLiteral escapes a string for use as a SQL literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// leadingDigits parses the leading digit run of s ("0249.mp4" -> 249).
func leadingDigits(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
