package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/claimsketch-com/claimsketchgo/internal/config"
	"github.com/claimsketch-com/claimsketchgo/internal/database"
	"github.com/claimsketch-com/claimsketchgo/internal/logger"
	"github.com/claimsketch-com/claimsketchgo/internal/models"
)

func main() {
	fmt.Println("🌱 ClaimSketch Demo Data Seeder")
	fmt.Println(strings.Repeat("=", 60))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zlog, err := logger.New(logger.Options{Level: "warn", Format: "console"})
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}

	db, err := database.Connect(cfg.Database, zlog)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")
	fmt.Println()

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Inspection{},
		&models.Room{},
		&models.Opening{},
		&models.Adjacency{},
		&models.Annotation{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")
	fmt.Println()

	var inspectionCount int64
	db.Model(&models.Inspection{}).Count(&inspectionCount)
	if inspectionCount > 0 {
		fmt.Printf("⚠️  Database already has %d inspection(s). Clear it first? (y/N): ", inspectionCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE annotations CASCADE")
		db.Exec("TRUNCATE TABLE openings CASCADE")
		db.Exec("TRUNCATE TABLE adjacencies CASCADE")
		db.Exec("TRUNCATE TABLE rooms CASCADE")
		db.Exec("TRUNCATE TABLE inspections CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println()
	fmt.Println("🏠 Creating demo inspection...")
	fmt.Println()

	// 1. The inspection
	inspection := models.Inspection{
		ID:           uuid.NewString(),
		ClaimNumber:  "CLM-2026-1107",
		PolicyNumber: "HO-5521907",
		InsuredName:  "Marisol Vega",
		Address:      "412 Aldersgate Dr, Tulsa, OK 74105",
		Status:       models.InspectionInProgress,
	}
	if err := db.Create(&inspection).Error; err != nil {
		log.Fatalf("❌ Failed to create inspection: %v", err)
	}
	fmt.Printf("   ✓ Created inspection: %s (%s)\n", inspection.ClaimNumber, inspection.InsuredName)

	// 2. Interior rooms of the main dwelling
	fmt.Println()
	fmt.Println("🚪 Creating rooms...")
	living := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Living Room", Status: models.RoomComplete,
		RoomType: "living_room", ViewType: models.ViewInterior,
		LengthFt: ftPtr(18), WidthFt: ftPtr(14), HeightFt: ftPtr(8),
		SortOrder: 1,
	}
	kitchen := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Kitchen", Status: models.RoomInProgress,
		RoomType: "kitchen", ViewType: models.ViewInterior,
		LengthFt: ftPtr(12), WidthFt: ftPtr(14), HeightFt: ftPtr(8),
		SortOrder: 2,
	}
	bedroom := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Primary Bedroom", Status: models.RoomNotStarted,
		RoomType: "bedroom", ViewType: models.ViewInterior,
		LengthFt: ftPtr(14), WidthFt: ftPtr(12), HeightFt: ftPtr(8),
		SortOrder: 3,
	}
	hallway := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Hallway", Status: models.RoomComplete,
		RoomType: "hallway", ViewType: models.ViewInterior,
		LengthFt: ftPtr(12), WidthFt: ftPtr(4), HeightFt: ftPtr(8),
		SortOrder: 4,
	}
	pantry := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Pantry", Status: models.RoomComplete,
		RoomType: "pantry", ViewType: models.ViewInterior,
		ParentRoomID: &kitchen.ID,
		LengthFt:     ftPtr(4), WidthFt: ftPtr(6), HeightFt: ftPtr(8),
		SortOrder: 5,
	}
	garage := models.Room{
		ID: uuid.NewString(), InspectionID: inspection.ID,
		Name: "Garage", Status: models.RoomNotStarted,
		RoomType: "garage", ViewType: models.ViewInterior,
		Structure: "Detached Garage",
		LengthFt:  ftPtr(22), WidthFt: ftPtr(22), HeightFt: ftPtr(9),
		SortOrder: 6,
	}

	// 3. Roof facets. The dwelling reads as a hip roof from its four
	// slopes; the garage carries an explicit gable.
	facets := []models.Room{
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Front Slope", Status: models.RoomInProgress,
			ViewType: models.ViewRoofPlan, FacetLabel: "Front", Pitch: "6/12", LengthFt: ftPtr(40), SortOrder: 10},
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Rear Slope", Status: models.RoomNotStarted,
			ViewType: models.ViewRoofPlan, FacetLabel: "Rear", Pitch: "6/12", LengthFt: ftPtr(40), SortOrder: 11},
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Left Slope", Status: models.RoomNotStarted,
			ViewType: models.ViewRoofPlan, FacetLabel: "Left", Pitch: "6/12", LengthFt: ftPtr(30), SortOrder: 12},
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Right Slope", Status: models.RoomNotStarted,
			ViewType: models.ViewRoofPlan, FacetLabel: "Right", Pitch: "6/12", LengthFt: ftPtr(30), SortOrder: 13},
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Garage Front", Status: models.RoomNotStarted,
			ViewType: models.ViewRoofPlan, FacetLabel: "Front", Pitch: "4/12", ShapeType: models.ShapeGable,
			Structure: "Detached Garage", LengthFt: ftPtr(22), SortOrder: 14},
		{ID: uuid.NewString(), InspectionID: inspection.ID, Name: "Garage Rear", Status: models.RoomNotStarted,
			ViewType: models.ViewRoofPlan, FacetLabel: "Rear", Pitch: "4/12", ShapeType: models.ShapeGable,
			Structure: "Detached Garage", LengthFt: ftPtr(22), SortOrder: 15},
	}

	rooms := []models.Room{living, kitchen, bedroom, hallway, pantry, garage}
	rooms = append(rooms, facets...)
	for i := range rooms {
		if err := db.Create(&rooms[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create room %s: %v", rooms[i].Name, err)
		} else {
			fmt.Printf("   ✓ Created room: %s\n", rooms[i].Name)
		}
	}
	fmt.Printf("✅ Created %d rooms\n\n", len(rooms))

	// 4. Adjacencies anchor the flush layout: kitchen east of the
	// living room, bedroom below it, hallway below the kitchen.
	fmt.Println("🧭 Creating adjacencies...")
	adjacencies := []models.Adjacency{
		{ID: uuid.NewString(), InspectionID: inspection.ID, RoomIDA: living.ID, RoomIDB: kitchen.ID,
			WallDirectionA: "east", WallDirectionB: "west"},
		{ID: uuid.NewString(), InspectionID: inspection.ID, RoomIDA: living.ID, RoomIDB: bedroom.ID,
			WallDirectionA: "south", WallDirectionB: "north"},
		{ID: uuid.NewString(), InspectionID: inspection.ID, RoomIDA: kitchen.ID, RoomIDB: hallway.ID,
			WallDirectionA: "south", WallDirectionB: "north"},
	}
	for i := range adjacencies {
		if err := db.Create(&adjacencies[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create adjacency: %v", err)
		} else {
			fmt.Printf("   ✓ Linked rooms (%s wall)\n", adjacencies[i].WallDirectionA)
		}
	}
	fmt.Printf("✅ Created %d adjacencies\n\n", len(adjacencies))

	// 5. Openings
	fmt.Println("🪟 Creating openings...")
	openings := []models.Opening{
		{ID: uuid.NewString(), RoomID: living.ID, OpeningType: models.OpeningDoor,
			WallDirection: "south", PositionOnWall: 0.35, WidthFt: 3, HeightFt: 6.8, Quantity: 1},
		{ID: uuid.NewString(), RoomID: living.ID, OpeningType: models.OpeningWindow,
			WallDirection: "north", PositionOnWall: 0.3, WidthFt: 3, HeightFt: 4, Quantity: 2},
		{ID: uuid.NewString(), RoomID: kitchen.ID, OpeningType: models.OpeningPassThrough,
			WallDirection: "west", PositionOnWall: 0.5, WidthFt: 4, HeightFt: 3, Quantity: 1},
		{ID: uuid.NewString(), RoomID: kitchen.ID, OpeningType: models.OpeningWindow,
			WallDirection: "north", PositionOnWall: 0.6, WidthFt: 3, HeightFt: 3.5, Quantity: 1},
		{ID: uuid.NewString(), RoomID: bedroom.ID, OpeningType: models.OpeningWindow,
			WallDirection: "east", PositionOnWall: 0.5, WidthFt: 3, HeightFt: 4, Quantity: 1},
		{ID: uuid.NewString(), RoomID: garage.ID, OpeningType: models.OpeningOverheadDoor,
			WallDirection: "south", PositionOnWall: 0.5, WidthFt: 16, HeightFt: 7, Quantity: 1},
		{ID: uuid.NewString(), RoomID: garage.ID, OpeningType: models.OpeningDoor,
			WallDirection: "east", PositionOnWall: 0.8, WidthFt: 3, HeightFt: 6.8, Quantity: 1},
	}
	for i := range openings {
		if err := db.Create(&openings[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create opening: %v", err)
		} else {
			fmt.Printf("   ✓ Created opening: %s (%s wall)\n", openings[i].OpeningType, openings[i].WallDirection)
		}
	}
	fmt.Printf("✅ Created %d openings\n\n", len(openings))

	// 6. Annotations
	fmt.Println("📌 Creating annotations...")
	annotations := []models.Annotation{
		{ID: uuid.NewString(), RoomID: living.ID, AnnotationType: models.AnnotationDamage,
			Label: "Water stain", Value: "Ceiling, 3 ft patch", PosX: 0.25, PosY: 0.4},
		{ID: uuid.NewString(), RoomID: kitchen.ID, AnnotationType: models.AnnotationNote,
			Label: "Flooring", Value: "Laminate buckling near sink", PosX: 0.6, PosY: 0.7},
		{ID: uuid.NewString(), RoomID: facets[0].ID, AnnotationType: models.AnnotationHailCount,
			Label: "Hail hits", Value: "12 per test square", PosX: 0.5, PosY: 0.5},
		{ID: uuid.NewString(), RoomID: facets[0].ID, AnnotationType: models.AnnotationStormDirection,
			Label: "Storm direction", Value: "NW", PosX: 0.8, PosY: 0.2},
	}
	for i := range annotations {
		if err := db.Create(&annotations[i]).Error; err != nil {
			log.Printf("⚠️  Failed to create annotation: %v", err)
		} else {
			fmt.Printf("   ✓ Created annotation: %s\n", annotations[i].AnnotationType)
		}
	}
	fmt.Printf("✅ Created %d annotations\n\n", len(annotations))

	// Summary
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("🎉 Demo data created successfully!")
	fmt.Println()
	fmt.Println("📊 Summary:")
	fmt.Printf("   • 1 inspection (%s)\n", inspection.ClaimNumber)
	fmt.Printf("   • %d rooms (interior, sub-area, roof facets, detached garage)\n", len(rooms))
	fmt.Printf("   • %d adjacencies\n", len(adjacencies))
	fmt.Printf("   • %d openings\n", len(openings))
	fmt.Printf("   • %d annotations\n", len(annotations))
	fmt.Println()
	fmt.Println("🚀 Start the server:")
	fmt.Println("   go run ./cmd/api")
	fmt.Printf("   Then visit: http://localhost:%s/?inspection=%s\n", cfg.Server.Port, inspection.ID)
	fmt.Println(strings.Repeat("=", 60))
}

func ftPtr(f float64) *float64 {
	return &f
}
