package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benjamonnguyen/pomomo-tui"
)

const (
	SelectAllIntervals = "SELECT id, mode, planned_seconds, completed_at, completed_work_intervals, created_at FROM intervals"
)

type intervalEntity struct {
	ID                     string
	Mode                   string
	PlannedSeconds         int64
	CompletedAt            int64
	CompletedWorkIntervals int
	CreatedAt              int64
}

type historyRepo struct {
	dbGetter txStdLib.DBGetter
	l        *log.Logger
}

var _ pomomo.HistoryRepo = (*historyRepo)(nil)

func NewHistoryRepo(dbGetter txStdLib.DBGetter, logger *log.Logger) *historyRepo {
	return &historyRepo{
		dbGetter: dbGetter,
		l:        logger,
	}
}

func (r *historyRepo) InsertInterval(ctx context.Context, interval pomomo.IntervalRecord) (pomomo.ExistingIntervalRecord, error) {
	if interval.Mode.Key() == "" {
		return pomomo.ExistingIntervalRecord{}, fmt.Errorf("provide required field 'Mode'")
	}
	if interval.CompletedAt.IsZero() {
		interval.CompletedAt = time.Now()
	}

	existingRecord := pomomo.ExistingIntervalRecord{
		IntervalRecord: interval,
		ExistingRecord: pomomo.NewExistingRecord[pomomo.IntervalID](uuid.NewString(), time.Now()),
	}
	e := mapToIntervalEntity(existingRecord)

	args := []any{
		e.ID,
		e.Mode,
		e.PlannedSeconds,
		e.CompletedAt,
		e.CompletedWorkIntervals,
		e.CreatedAt,
	}
	query := "INSERT INTO intervals (id, mode, planned_seconds, completed_at, completed_work_intervals, created_at) VALUES " + generateParameters(len(args))
	r.l.Debug("creating interval", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return pomomo.ExistingIntervalRecord{}, err
	}

	return existingRecord, nil
}

func (r *historyRepo) GetInterval(ctx context.Context, id pomomo.IntervalID) (pomomo.ExistingIntervalRecord, error) {
	if id == "" {
		return pomomo.ExistingIntervalRecord{}, fmt.Errorf("provide id")
	}

	row := r.dbGetter(ctx).QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE id=?", SelectAllIntervals), id,
	)
	return extractInterval(row)
}

func (r *historyRepo) ListRecentIntervals(ctx context.Context, limit int) ([]pomomo.ExistingIntervalRecord, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := fmt.Sprintf("%s ORDER BY completed_at DESC, created_at DESC LIMIT ?", SelectAllIntervals)
	r.l.Debug("listing intervals", "query", query, "limit", limit)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var intervals []pomomo.ExistingIntervalRecord
	for rows.Next() {
		interval, err := extractInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return intervals, nil
}

func (r *historyRepo) CountByMode(ctx context.Context, since time.Time) (map[pomomo.Mode]int, error) {
	query := "SELECT mode, COUNT(*) FROM intervals WHERE completed_at >= ? GROUP BY mode"
	r.l.Debug("counting intervals", "query", query, "since", since)
	rows, err := r.dbGetter(ctx).QueryContext(ctx, query, since.Unix())
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	counts := make(map[pomomo.Mode]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		mode, ok := pomomo.ModeFromKey(key)
		if !ok {
			r.l.Warn("skipping unknown mode", "mode", key)
			continue
		}
		counts[mode] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func extractInterval(s scannable) (pomomo.ExistingIntervalRecord, error) {
	var e intervalEntity
	if err := s.Scan(&e.ID, &e.Mode, &e.PlannedSeconds, &e.CompletedAt, &e.CompletedWorkIntervals, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pomomo.ExistingIntervalRecord{}, ErrNotFound
		}
		return pomomo.ExistingIntervalRecord{}, err
	}

	return mapToExistingIntervalRecord(e)
}

func mapToIntervalEntity(interval pomomo.ExistingIntervalRecord) intervalEntity {
	return intervalEntity{
		ID:                     string(interval.ID),
		Mode:                   interval.Mode.Key(),
		PlannedSeconds:         int64(interval.Planned / time.Second),
		CompletedAt:            interval.CompletedAt.Unix(),
		CompletedWorkIntervals: interval.CompletedWorkIntervals,
		CreatedAt:              interval.CreatedAt.Unix(),
	}
}

func mapToExistingIntervalRecord(e intervalEntity) (pomomo.ExistingIntervalRecord, error) {
	mode, ok := pomomo.ModeFromKey(e.Mode)
	if !ok {
		return pomomo.ExistingIntervalRecord{}, fmt.Errorf("unknown mode %q for interval %s", e.Mode, e.ID)
	}
	return pomomo.ExistingIntervalRecord{
		ExistingRecord: pomomo.ExistingRecord[pomomo.IntervalID]{
			ID:        pomomo.IntervalID(e.ID),
			CreatedAt: time.Unix(e.CreatedAt, 0),
		},
		IntervalRecord: pomomo.IntervalRecord{
			Mode:                   mode,
			Planned:                time.Duration(e.PlannedSeconds) * time.Second,
			CompletedAt:            time.Unix(e.CompletedAt, 0),
			CompletedWorkIntervals: e.CompletedWorkIntervals,
		},
	}, nil
}
