// Command seed fills a development database with members and upcoming events
// so the reminder scan has something to work on.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"itufk/config"
	"itufk/database"
	"itufk/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "Club2026!"

func main() {
	config.LoadConfig()
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.InitDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())
	db := database.Database()

	for _, name := range []string{"members", "events", "reminder_notifications"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	now := time.Now()
	names := []string{"Ayse", "Baris", "Cem", "Deniz"}
	var members []interface{}
	for i, name := range names {
		members = append(members, models.Member{
			ID:           fmt.Sprintf("member-%d", i+1),
			Name:         name,
			Email:        fmt.Sprintf("%s@example.com", strings.ToLower(name)),
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if _, err := db.Collection("members").InsertMany(ctx, members); err != nil {
		log.Fatalf("Failed to insert members: %v", err)
	}

	// Events spread around the reminder window, including both edges and a day past each.
	loc := config.ReminderLocation()
	today := now.In(loc)
	var events []interface{}
	for i, days := range []int{0, 1, 3, 7, 8, -2} {
		captain := fmt.Sprintf("member-%d", i%len(names)+1)
		coCaptain := fmt.Sprintf("member-%d", (i+1)%len(names)+1)
		events = append(events, models.Event{
			ID:               fmt.Sprintf("event-%d", i+1),
			Title:            fmt.Sprintf("Photo walk #%d", i+1),
			Date:             today.AddDate(0, 0, days).Format(models.EventDateLayout),
			CaptainID:        captain,
			CoCaptainID:      coCaptain,
			GenericAnnounced: i%2 == 1,
		})
	}
	events = append(events, models.Event{ID: "event-undated", Title: "Darkroom night", CaptainID: "member-1"})

	if _, err := db.Collection("events").InsertMany(ctx, events); err != nil {
		log.Fatalf("Failed to insert events: %v", err)
	}

	fmt.Printf("Seeded %d members (password %q) and %d events.\n", len(members), seedPassword, len(events))
}
