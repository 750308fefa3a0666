package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"holidayplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tripCols = []string{
		"id", "destination", "description", "start_date", "end_date", "created_at", "updated_at",
		"u.id", "u.first_name", "u.last_name", "u.email", "u.is_organiser", "u.created_at", "u.updated_at",
	}
	tripAttendeeCols = []string{"trip_id", "id", "first_name", "last_name", "email", "is_organiser", "created_at", "updated_at"}
)

func TestTripRepository_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM trips t\s+INNER JOIN users u ON u.id = t.organiser_id\s+ORDER BY t.start_date, t.id`).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(int64(1), "Rome", "Citytrip", start, start.AddDate(0, 0, 5), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", true, ts, ts))
	mock.ExpectQuery(`FROM trip_attendees a\s+INNER JOIN users u ON u.id = a.user_id\s+WHERE a.trip_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(tripAttendeeCols).
			AddRow(int64(1), int64(3), "Koen", "Willems", "koen@ucll.be", false, ts, ts))

	got, err := NewTripRepository(db).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rome", got[0].Destination)
	assert.Equal(t, int64(7), got[0].Organiser.ID)
	require.Len(t, got[0].Attendees, 1)
	assert.Equal(t, int64(3), got[0].Attendees[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTripRepository_ListAll_invalid_row(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM trips t`).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow(int64(1), "Rome", "Citytrip", start, start.AddDate(0, 0, 5), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", true, ts, ts).
			AddRow(int64(2), "Gent", "Terug in de tijd", start, start.AddDate(0, 0, -1), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", true, ts, ts))

	_, err = NewTripRepository(db).ListAll(context.Background())
	require.ErrorIs(t, err, errInvalidTripRow)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "End date must be after start date")
}

func TestTripRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				mock.ExpectQuery(`WHERE t.id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(tripCols).
						AddRow(int64(1), "Rome", "Citytrip", start, start.AddDate(0, 0, 5), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", true, ts, ts))
				mock.ExpectQuery(`FROM trip_attendees`).
					WithArgs(sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows(tripAttendeeCols))
			},
		},
		{
			name: "organiser lost role",
			mock: func(mock sqlmock.Sqlmock) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				mock.ExpectQuery(`WHERE t.id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(tripCols).
						AddRow(int64(1), "Rome", "Citytrip", start, start.AddDate(0, 0, 5), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", false, ts, ts))
			},
			wantErr: true,
			errIs:   errInvalidTripRow,
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`WHERE t.id = \$1`).
					WithArgs(int64(1)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: true,
			errIs:   domain.ErrNotFound,
		},
		{
			name: "attendee query error",
			mock: func(mock sqlmock.Sqlmock) {
				start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
				mock.ExpectQuery(`WHERE t.id = \$1`).
					WithArgs(int64(1)).
					WillReturnRows(sqlmock.NewRows(tripCols).
						AddRow(int64(1), "Rome", "Citytrip", start, start.AddDate(0, 0, 5), ts, ts, int64(7), "Pieter", "De Vries", "pieter@ucll.be", true, ts, ts))
				mock.ExpectQuery(`FROM trip_attendees`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
			errIs:   sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewTripRepository(db).GetByID(ctx, 1)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Rome", got.Destination)
				assert.Empty(t, got.Attendees)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
