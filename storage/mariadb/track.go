package mariadb

import (
	"database/sql"
	"time"

	resonator "github.com/vacay/resonator"
	"github.com/vacay/resonator/errors"
	"github.com/jmoiron/sqlx"
)

// databaseTrack is the type used to communicate with the database
type databaseTrack struct {
	ID          uint64
	CodeVersion sql.NullFloat64
	Name        sql.NullString
	Length      sql.NullInt64
	ImportDate  time.Time
}

func (dt databaseTrack) ToTrack() resonator.Track {
	return resonator.Track{
		ID:          resonator.TrackID(dt.ID),
		Name:        dt.Name.String,
		Length:      int(dt.Length.Int64),
		CodeVersion: dt.CodeVersion.Float64,
		ImportDate:  dt.ImportDate,
	}
}

// TrackStorage implements resonator.TrackStorage
type TrackStorage struct {
	handle handle
}

// candidateRow is a single row of the coarse overlap query
type candidateRow struct {
	TrackID uint64
	Score   int
}

// codeRow is a single (code, time) row belonging to a track
type codeRow struct {
	Code    uint32
	Time    uint32
	TrackID uint64 `db:"track_id"`
}

// QueryByCodes implements resonator.TrackStorage
//
// Candidates are found in two phases: first the tracks with the highest raw
// code overlap, then all of their overlapping (code, time) rows in one go.
func (ts TrackStorage) QueryByCodes(codes []uint32, limit int) ([]resonator.CandidateMatch, error) {
	const op errors.Op = "mariadb/TrackStorage.QueryByCodes"

	var query = `
	SELECT
		track_id,
		COUNT(track_id) AS score
	FROM
		codes
	WHERE
		code IN (:codes)
	GROUP BY
		track_id
	ORDER BY
		score DESC
	LIMIT :limit;
	`

	var candidates []candidateRow
	err := ts.handle.Select(&candidates, query, map[string]any{
		"codes": codes,
		"limit": limit,
	})
	if err != nil {
		return nil, errors.E(op, err)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	matches := make([]resonator.CandidateMatch, len(candidates))
	indexOf := make(map[uint64]int, len(candidates))
	ids := make([]uint64, len(candidates))
	for i, c := range candidates {
		matches[i] = resonator.CandidateMatch{
			TrackID: resonator.TrackID(c.TrackID),
			Score:   c.Score,
		}
		indexOf[c.TrackID] = i
		ids[i] = c.TrackID
	}

	query = `
	SELECT
		code,
		time,
		track_id
	FROM
		codes
	WHERE
		code IN (:codes) AND
		track_id IN (:ids);
	`

	var rows []codeRow
	err = ts.handle.Select(&rows, query, map[string]any{
		"codes": codes,
		"ids":   ids,
	})
	if err != nil {
		return nil, errors.E(op, err)
	}

	for _, row := range rows {
		i, ok := indexOf[row.TrackID]
		if !ok {
			continue
		}
		matches[i].Codes = append(matches[i].Codes, row.Code)
		matches[i].Times = append(matches[i].Times, row.Time)
	}

	return matches, nil
}

// Get implements resonator.TrackStorage
func (ts TrackStorage) Get(id resonator.TrackID) (*resonator.Track, error) {
	const op errors.Op = "mariadb/TrackStorage.Get"

	var query = `
	SELECT
		id,
		codever,
		name,
		length,
		import_date
	FROM
		tracks
	WHERE
		id=?;
	`

	var tmp databaseTrack
	err := sqlx.Get(ts.handle, &tmp, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.E(op, errors.TrackUnknown, id)
		}
		return nil, errors.E(op, err)
	}

	track := tmp.ToTrack()
	return &track, nil
}

// Create implements resonator.TrackStorage
//
// The track row and its code rows are inserted in one transaction so a
// failure can't leave a track behind without its codes.
func (ts TrackStorage) Create(fp resonator.Fingerprint) (resonator.TrackID, error) {
	const op errors.Op = "mariadb/TrackStorage.Create"

	if fp.Length <= 0 {
		return 0, errors.E(op, errors.InvalidArgument, errors.Info("length"))
	}
	if fp.CodeVersion == 0 {
		return 0, errors.E(op, errors.InvalidArgument, errors.Info("codever"))
	}
	if len(fp.Codes) == 0 || len(fp.Codes) != len(fp.Times) {
		return 0, errors.E(op, errors.InvalidArgument, errors.Info("codes"))
	}

	h, tx, err := requireTx(ts.handle)
	if err != nil {
		return 0, errors.E(op, errors.TransactionBegin, err)
	}
	defer tx.Rollback()

	var query = `
	INSERT INTO
		tracks (codever, name, length, import_date)
	VALUES
		(:codever, :name, :length, NOW());
	`

	new, err := namedExecLastInsertId(h, query, map[string]any{
		"codever": fp.CodeVersion,
		"name":    nullString(fp.TrackName),
		"length":  fp.Length,
	})
	if err != nil {
		return 0, errors.E(op, err)
	}
	id := resonator.TrackID(new)

	rows := make([]codeRow, len(fp.Codes))
	for i := range fp.Codes {
		rows[i] = codeRow{
			Code:    fp.Codes[i],
			Time:    fp.Times[i],
			TrackID: uint64(id),
		}
	}

	query = `INSERT IGNORE INTO codes (code, time, track_id) VALUES (:code, :time, :track_id);`

	_, err = sqlx.NamedExec(h, query, rows)
	if err != nil {
		return 0, errors.E(op, err, id)
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.E(op, errors.TransactionCommit, err, id)
	}
	return id, nil
}

// UpdateName implements resonator.TrackStorage
func (ts TrackStorage) UpdateName(id resonator.TrackID, name string) error {
	const op errors.Op = "mariadb/TrackStorage.UpdateName"

	var query = `UPDATE tracks SET name=? WHERE id=?;`

	res, err := ts.handle.Exec(query, name, id)
	if err != nil {
		return errors.E(op, err, id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.E(op, err, id)
	}
	if affected != 1 {
		return errors.E(op, errors.TrackUnknown, id)
	}
	return nil
}

// Delete implements resonator.TrackStorage
func (ts TrackStorage) Delete(id resonator.TrackID) error {
	const op errors.Op = "mariadb/TrackStorage.Delete"

	h, tx, err := requireTx(ts.handle)
	if err != nil {
		return errors.E(op, errors.TransactionBegin, err)
	}
	defer tx.Rollback()

	_, err = h.Exec(`DELETE FROM codes WHERE track_id=?;`, id)
	if err != nil {
		return errors.E(op, err, id)
	}

	res, err := h.Exec(`DELETE FROM tracks WHERE id=?;`, id)
	if err != nil {
		return errors.E(op, err, id)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.E(op, err, id)
	}
	if affected != 1 {
		return errors.E(op, errors.TrackUnknown, id)
	}

	if err = tx.Commit(); err != nil {
		return errors.E(op, errors.TransactionCommit, err, id)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
