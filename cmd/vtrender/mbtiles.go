package main

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // import sqlite3 driver
	"github.com/paulmach/orb/maptile"
)

var errNoTile = errors.New("tile not found")

// MBTiles reads tiles from an MBTiles file. Rows are stored in the TMS
// scheme; the API takes and returns XYZ tiles.
type MBTiles struct {
	path string
	db   *sql.DB
}

// OpenMBTiles opens an MBTiles file read-only.
func OpenMBTiles(path string) (*MBTiles, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &MBTiles{path: path, db: db}, nil
}

// Close closes the database.
func (m *MBTiles) Close() error {
	return m.db.Close()
}

func tmsRow(z maptile.Zoom, y uint32) uint32 {
	return 1<<uint(z) - 1 - y
}

// Tile returns the raw, possibly gzipped, data of t.
func (m *MBTiles) Tile(t maptile.Tile) ([]byte, error) {
	var data []byte
	err := m.db.QueryRow("select tile_data from tiles where zoom_level = ? and tile_column = ? and tile_row = ?",
		int(t.Z), t.X, tmsRow(t.Z, t.Y)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%d/%d/%d: %w", t.Z, t.X, t.Y, errNoTile)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Tiles lists the tiles stored at zoom z.
func (m *MBTiles) Tiles(z maptile.Zoom) ([]maptile.Tile, error) {
	rows, err := m.db.Query("select tile_column, tile_row from tiles where zoom_level = ? order by tile_column, tile_row", int(z))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiles []maptile.Tile
	for rows.Next() {
		var x, y uint32
		if err := rows.Scan(&x, &y); err != nil {
			return nil, err
		}
		tiles = append(tiles, maptile.New(x, tmsRow(z, y), z))
	}
	return tiles, rows.Err()
}

// Metadata returns the name/value pairs of the metadata table.
func (m *MBTiles) Metadata() (map[string]string, error) {
	rows, err := m.db.Query("select name, value from metadata")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		meta[name] = value
	}
	return meta, rows.Err()
}
