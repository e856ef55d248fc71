// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

// Session economy
const (
	StartingCurrency    = 200
	StartingLives       = 20
	KillScore           = 20
	KillReward          = 15
	WaveCompletionBonus = 50
	RefundNumerator     = 1 // refund = cost * RefundNumerator / RefundDenominator, rounded down
	RefundDenominator   = 2
)

// World geometry. Grid cells are TileSize world units apart; Y is up.
const (
	TileSize     = 2.0
	UnitHeight   = 1.0 // hostile units travel at this height
	MuzzleHeight = 2.8 // projectiles leave the emplacement this far above the ground
	HitRadius    = 1.0
)

// Simulation
const (
	UnitSpeed        = 3.0  // world units per second
	ProjectileSpeed  = 12.0 // world units per second
	WaypointEpsilon  = 0.01
	MaxDeltaTime     = 0.06
	AutoAdvanceDelay = 3 * time.Second
)

// Endless mode tuning. The caps bound simulation cost at high levels.
const (
	EndlessBaseHealthMultiplier = 5.0
	EndlessHealthPerLevel       = 0.5
	EndlessBaseCount            = 20
	EndlessCountPerLevel        = 5
	EndlessMaxCount             = 150
	EndlessBaseSpawnDelay       = 200 * time.Millisecond
	EndlessSpawnDelayStep       = 5 * time.Millisecond
	EndlessMinSpawnDelay        = 100 * time.Millisecond
	EndlessGolemRatioBase       = 0.15
	EndlessImpRatioBase         = 0.10
	EndlessRatioPerLevel        = 0.025
	EndlessSpecialRatioCap      = 0.40
)

// Desktop front-end
const (
	ScreenWidth      = 1200
	ScreenHeight     = 900
	CellPixels       = 52
	MapOffsetX       = 80
	MapOffsetY       = 90
	HUDLineHeight    = 18
	ProjectilePixels = 3.0
	UnitPixels       = 11.0
	TowerPixels      = 17.0
	StrokeWidth      = 2.0
)

var (
	BackgroundColor = color.RGBA{34, 34, 34, 255}
	BuildableColor  = color.RGBA{34, 139, 34, 255}
	PathColor       = color.RGBA{194, 178, 128, 255}
	GoalColor       = color.RGBA{255, 0, 0, 255}
	GridLineColor   = color.RGBA{20, 20, 30, 120}
	CursorColor     = color.RGBA{255, 255, 255, 200}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	OverlayColor    = color.RGBA{0, 0, 0, 170}
	HitFlashColor   = color.RGBA{255, 255, 255, 255}
	ButtonColor     = color.RGBA{68, 68, 68, 255}
	ButtonHover     = color.RGBA{100, 100, 100, 255}
	SelectedColor   = color.RGBA{0, 255, 0, 255}
	WaveStateColor  = color.RGBA{220, 60, 60, 220}
	IdleStateColor  = color.RGBA{70, 130, 180, 220}

	// SpeedMultipliers cycles through the speed button settings.
	SpeedMultipliers = []float64{1, 2, 4}
)
