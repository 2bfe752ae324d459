package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/genre-guide/graphql-api/internal/domain"
)

// SQLiteStore keeps the catalog in a sqlite database. Rows hold the list
// fields as JSON, keeping the document shape of the records intact.
type SQLiteStore struct {
	db *gorm.DB
}

type subgenreRow struct {
	PrimaryName     string `gorm:"primaryKey"`
	Names           string
	Category        string
	Origins         string
	Children        string
	TextColor       string
	BackgroundColor string
	Description     string
}

func (subgenreRow) TableName() string { return "subgenres" }

type trackRow struct {
	ID              string `gorm:"primaryKey"`
	Artist          string
	Title           string
	RecordLabel     string
	ReleaseDate     time.Time `gorm:"index"`
	SubgenresNested string
}

func (trackRow) TableName() string { return "tracks" }

// NewSQLiteStore opens (creating if necessary) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if err := db.AutoMigrate(&subgenreRow{}, &trackRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SubgenreByPrimaryName(ctx context.Context, name string) (*domain.Subgenre, error) {
	var row subgenreRow
	err := s.db.WithContext(ctx).First(&row, "primary_name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("subgenre %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up subgenre %q: %w", name, err)
	}
	return rowToSubgenre(&row)
}

func (s *SQLiteStore) SubgenreByAnyName(ctx context.Context, name string) (*domain.Subgenre, error) {
	// The LIKE over the JSON names column is only a prefilter; membership is
	// verified exactly after decoding. Ordered for a deterministic pick if
	// the data ever has two records sharing an alias.
	quoted, err := json.Marshal(name)
	if err != nil {
		return nil, fmt.Errorf("failed to encode name %q: %w", name, err)
	}

	var rows []subgenreRow
	err = s.db.WithContext(ctx).
		Where("names LIKE ?", "%"+string(quoted)+"%").
		Order("primary_name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up subgenre by name %q: %w", name, err)
	}

	for i := range rows {
		subgenre, err := rowToSubgenre(&rows[i])
		if err != nil {
			return nil, err
		}
		for _, candidate := range subgenre.Names {
			if candidate == name {
				return subgenre, nil
			}
		}
	}
	return nil, fmt.Errorf("subgenre %q: %w", name, ErrNotFound)
}

func (s *SQLiteStore) AllSubgenres(ctx context.Context) ([]*domain.Subgenre, error) {
	var rows []subgenreRow
	if err := s.db.WithContext(ctx).Order("primary_name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subgenres: %w", err)
	}

	subgenres := make([]*domain.Subgenre, 0, len(rows))
	for i := range rows {
		subgenre, err := rowToSubgenre(&rows[i])
		if err != nil {
			return nil, err
		}
		subgenres = append(subgenres, subgenre)
	}
	return subgenres, nil
}

func (s *SQLiteStore) AllCategories(ctx context.Context) ([]*domain.Subgenre, error) {
	all, err := s.AllSubgenres(ctx)
	if err != nil {
		return nil, err
	}

	var categories []*domain.Subgenre
	for _, subgenre := range all {
		if subgenre.IsCategory() {
			categories = append(categories, subgenre)
		}
	}
	return categories, nil
}

func (s *SQLiteStore) TrackByID(ctx context.Context, id string) (*domain.Track, error) {
	var row trackRow
	err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("track %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up track %q: %w", id, err)
	}
	return rowToTrack(&row), nil
}

func (s *SQLiteStore) ListTracks(ctx context.Context, q TrackQuery) ([]*domain.Track, error) {
	tx := s.db.WithContext(ctx).Model(&trackRow{})

	if q.BeforeDate != nil {
		tx = tx.Where("release_date <= ?", *q.BeforeDate)
	}
	if q.AfterDate != nil {
		tx = tx.Where("release_date >= ?", *q.AfterDate)
	}
	if q.BeforeID != "" {
		ref, err := s.TrackByID(ctx, q.BeforeID)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("release_date < ?", ref.ReleaseDate)
	}
	if q.AfterID != "" {
		ref, err := s.TrackByID(ctx, q.AfterID)
		if err != nil {
			return nil, err
		}
		tx = tx.Where("release_date > ?", ref.ReleaseDate)
	}

	order := "release_date DESC, id ASC"
	if !q.NewestFirst {
		order = "release_date ASC, id ASC"
	}

	var rows []trackRow
	if err := tx.Order(order).Limit(q.Limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}

	tracks := make([]*domain.Track, 0, len(rows))
	for i := range rows {
		tracks = append(tracks, rowToTrack(&rows[i]))
	}
	return tracks, nil
}

func (s *SQLiteStore) SaveSubgenre(ctx context.Context, subgenre *domain.Subgenre) error {
	if subgenre.PrimaryName() == "" {
		return fmt.Errorf("subgenre has no primary name")
	}

	row, err := subgenreToRow(subgenre)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save subgenre %q: %w", subgenre.PrimaryName(), err)
	}
	return nil
}

func (s *SQLiteStore) SaveTrack(ctx context.Context, track *domain.Track) error {
	if track.ID == "" {
		return fmt.Errorf("track %q by %q has no ID", track.Title, track.Artist)
	}

	row := &trackRow{
		ID:              track.ID,
		Artist:          track.Artist,
		Title:           track.Title,
		RecordLabel:     track.RecordLabel,
		ReleaseDate:     track.ReleaseDate,
		SubgenresNested: track.SubgenresNested,
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to save track %q: %w", track.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func rowToSubgenre(row *subgenreRow) (*domain.Subgenre, error) {
	subgenre := &domain.Subgenre{
		Category:        row.Category,
		TextColor:       row.TextColor,
		BackgroundColor: row.BackgroundColor,
		Description:     row.Description,
	}

	for _, field := range []struct {
		raw  string
		into *[]string
	}{
		{row.Names, &subgenre.Names},
		{row.Origins, &subgenre.Origins},
		{row.Children, &subgenre.Children},
	} {
		if field.raw == "" {
			continue
		}
		if err := json.Unmarshal([]byte(field.raw), field.into); err != nil {
			return nil, fmt.Errorf("corrupt subgenre row %q: %w", row.PrimaryName, err)
		}
	}
	return subgenre, nil
}

func subgenreToRow(subgenre *domain.Subgenre) (*subgenreRow, error) {
	row := &subgenreRow{
		PrimaryName:     subgenre.PrimaryName(),
		Category:        subgenre.Category,
		TextColor:       subgenre.TextColor,
		BackgroundColor: subgenre.BackgroundColor,
		Description:     subgenre.Description,
	}

	for _, field := range []struct {
		values []string
		into   *string
	}{
		{subgenre.Names, &row.Names},
		{subgenre.Origins, &row.Origins},
		{subgenre.Children, &row.Children},
	} {
		encoded, err := json.Marshal(field.values)
		if err != nil {
			return nil, fmt.Errorf("failed to encode subgenre %q: %w", subgenre.PrimaryName(), err)
		}
		*field.into = string(encoded)
	}
	return row, nil
}

func rowToTrack(row *trackRow) *domain.Track {
	return &domain.Track{
		ID:              row.ID,
		Artist:          row.Artist,
		Title:           row.Title,
		RecordLabel:     row.RecordLabel,
		ReleaseDate:     row.ReleaseDate,
		SubgenresNested: row.SubgenresNested,
	}
}
