// Package model holds the persistence schema for sheets and the command
// log.
package model

import "time"

// SheetAttribute is one attribute row of a character sheet. A sheet is the
// set of rows sharing a pc_number; updated_at drives the stale-sheet purge.
type SheetAttribute struct {
	ID        uint   `gorm:"primaryKey"`
	PCNumber  int    `gorm:"column:pc_number;uniqueIndex:idx_sheet_attr,priority:1"`
	Name      string `gorm:"uniqueIndex:idx_sheet_attr,priority:2"`
	Value     int
	UpdatedAt time.Time
}

func (SheetAttribute) TableName() string { return "sheet_attributes" }

// CommandLog is one logged submission.
type CommandLog struct {
	ID       uint `gorm:"primaryKey"`
	Command  string
	A1       string
	A2       string
	A3       string
	A4       string
	A5       string
	A6       string
	Username string
	IP       string
	// SubmittedAt is the client-side wall-clock string from the request.
	SubmittedAt string
	LoggedAt    time.Time `gorm:"index"`
}

func (CommandLog) TableName() string { return "command_logs" }
