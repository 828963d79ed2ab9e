package sessions

import (
	models "SmashSessions/models/postgres"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PostgresStore is the GORM-backed SessionStore. One GameSession row is one
// session document; host and participants are JSONB sub-documents.
type PostgresStore struct {
	DB *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (st *PostgresStore) FindFuture(ctx context.Context, now time.Time, skip, limit int) ([]Session, error) {
	var rows []models.GameSession
	q := st.DB.WithContext(ctx).
		Where("date_start > ?", now).
		Order("date_start asc, id asc").
		Offset(skip)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error querying future sessions: %w", err)
	}

	result := make([]Session, 0, len(rows))
	for _, row := range rows {
		s, err := fromModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, nil
}

func (st *PostgresStore) FindByID(ctx context.Context, id uint) (*Session, error) {
	var row models.GameSession
	if err := st.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("error looking up session %d: %w", id, err)
	}
	return fromModel(row)
}

func (st *PostgresStore) Insert(ctx context.Context, s *Session) (uint, error) {
	row, err := toModel(s)
	if err != nil {
		return 0, err
	}
	if err := st.DB.WithContext(ctx).Create(row).Error; err != nil {
		return 0, fmt.Errorf("error inserting session: %w", err)
	}
	return row.ID, nil
}

func (st *PostgresStore) UpdateDetails(ctx context.Context, id uint, version int, places *int, address, comment *string) error {
	fields := map[string]interface{}{"version": version + 1}
	if places != nil {
		fields["places"] = *places
	}
	if address != nil {
		fields["address"] = *address
	}
	if comment != nil {
		fields["comment"] = *comment
	}
	return st.conditionalUpdate(ctx, id, version, fields)
}

func (st *PostgresStore) UpdateParticipants(ctx context.Context, id uint, version int, participants []User) error {
	blob, err := marshalJSONB(participants)
	if err != nil {
		return err
	}
	return st.conditionalUpdate(ctx, id, version, map[string]interface{}{
		"participants": blob,
		"version":      version + 1,
	})
}

func (st *PostgresStore) UpdateHost(ctx context.Context, id uint, version int, host User) error {
	blob, err := marshalJSONB(host)
	if err != nil {
		return err
	}
	return st.conditionalUpdate(ctx, id, version, map[string]interface{}{
		"host":    blob,
		"version": version + 1,
	})
}

func (st *PostgresStore) Delete(ctx context.Context, id uint) error {
	result := st.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.GameSession{})
	if result.Error != nil {
		return fmt.Errorf("error deleting session %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// conditionalUpdate applies the field set only when the stored version still
// matches the one the aggregate was read at. Zero rows affected means
// another request won the race.
func (st *PostgresStore) conditionalUpdate(ctx context.Context, id uint, version int, fields map[string]interface{}) error {
	result := st.DB.WithContext(ctx).
		Model(&models.GameSession{}).
		Where("id = ? AND version = ?", id, version).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("error updating session %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		// Either deleted meanwhile or modified by a concurrent request.
		var count int64
		if err := st.DB.WithContext(ctx).Model(&models.GameSession{}).Where("id = ?", id).Count(&count).Error; err == nil && count == 0 {
			return ErrSessionNotFound
		}
		return ErrConcurrentModification
	}
	return nil
}

func marshalJSONB(v interface{}) (datatypes.JSON, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error encoding sub-document: %w", err)
	}
	return datatypes.JSON(blob), nil
}

func fromModel(row models.GameSession) (*Session, error) {
	var host User
	if err := json.Unmarshal(row.Host, &host); err != nil {
		return nil, fmt.Errorf("error decoding host of session %d: %w", row.ID, err)
	}
	participants := []User{}
	if len(row.Participants) > 0 {
		if err := json.Unmarshal(row.Participants, &participants); err != nil {
			return nil, fmt.Errorf("error decoding participants of session %d: %w", row.ID, err)
		}
	}
	return &Session{
		ID:           row.ID,
		DateStart:    row.DateStart,
		DateEnd:      row.DateEnd,
		Places:       row.Places,
		Address:      row.Address,
		Comment:      row.Comment,
		Host:         host,
		Participants: participants,
		Version:      row.Version,
	}, nil
}

func toModel(s *Session) (*models.GameSession, error) {
	host, err := marshalJSONB(s.Host)
	if err != nil {
		return nil, err
	}
	participants, err := marshalJSONB(s.Participants)
	if err != nil {
		return nil, err
	}
	return &models.GameSession{
		ID:           s.ID,
		DateStart:    s.DateStart,
		DateEnd:      s.DateEnd,
		Places:       s.Places,
		Address:      s.Address,
		Comment:      s.Comment,
		Host:         host,
		Participants: participants,
		Version:      s.Version,
	}, nil
}
