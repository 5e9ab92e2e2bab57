package mariadb

import (
	"database/sql"
	"time"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/jmoiron/sqlx"
)

// VitaminStorage implements resonator.VitaminStorage
type VitaminStorage struct {
	handle handle
}

// databaseVitamin is the type used to communicate with the database
type databaseVitamin struct {
	ID            uint64
	Duration      sql.NullInt64
	ProcessedAt   *time.Time
	FingerprintID sql.NullInt64
}

func (dv databaseVitamin) ToVitamin() resonator.Vitamin {
	v := resonator.Vitamin{
		ID:          resonator.VitaminID(dv.ID),
		Duration:    int(dv.Duration.Int64),
		ProcessedAt: dv.ProcessedAt,
	}
	if dv.FingerprintID.Valid {
		id := resonator.TrackID(dv.FingerprintID.Int64)
		v.FingerprintID = &id
	}
	return v
}

// NextPending implements resonator.VitaminStorage
func (vs VitaminStorage) NextPending(maxDuration int) (*resonator.Vitamin, error) {
	const op errors.Op = "mariadb/VitaminStorage.NextPending"

	var query = `
	SELECT
		id,
		duration,
		processed_at,
		fingerprint_id
	FROM
		vitamins
	WHERE
		processed_at IS NOT NULL AND
		fingerprint_id IS NULL AND
		duration < ?
	ORDER BY RAND()
	LIMIT 1;
	`

	var tmp databaseVitamin
	err := sqlx.Get(vs.handle, &tmp, query, maxDuration)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.E(op, errors.NoVitaminAvailable)
		}
		return nil, errors.E(op, err)
	}

	vitamin := tmp.ToVitamin()
	return &vitamin, nil
}

// AssignTrack implements resonator.VitaminStorage
func (vs VitaminStorage) AssignTrack(id resonator.VitaminID, track resonator.TrackID) error {
	const op errors.Op = "mariadb/VitaminStorage.AssignTrack"

	var query = `UPDATE vitamins SET fingerprint_id=? WHERE id=?;`

	res, err := vs.handle.Exec(query, track, id)
	if err != nil {
		return errors.E(op, err, id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.E(op, err, id)
	}
	if affected != 1 {
		return errors.E(op, errors.VitaminUnknown, id)
	}
	return nil
}
