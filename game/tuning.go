package game

import "time"

const (
	CanvasWidth  = 800
	CanvasHeight = 600
	CellSize     = 20
	Cols         = CanvasWidth / CellSize
	Rows         = CanvasHeight / CellSize

	Speed = 2.0 // pixels per tick

	SpawnRow = 1
	SpawnCol = 1

	PelletRadius      = 15.0
	PowerPelletRadius = 20.0
	PowerUpRadius     = 25.0
	EliminationRadius = 30.0

	PelletPoints      = 10
	PowerPelletPoints = 50
	PowerUpPoints     = 100
	EliminationPoints = 200

	PowerPelletChance = 0.05 // checked first
	PelletChance      = 0.7  // checked when the cell is not a power pellet

	PowerUpDuration      = 10 * time.Second
	PowerUpSpawnInterval = 10 * time.Second
	PowerUpTTL           = 10 * time.Second
	PowerUpSpawnAttempts = 50

	DefaultColor = "#ffff00"
	PowerColor   = "#a855f7"
)
