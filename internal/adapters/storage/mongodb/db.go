package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Colecciones que escribe el servicio principal; acá solo se leen.
const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"
	healthCollection       = "healthrecords"
	vaccinationsCollection = "vaccinations"
)

// Open conecta, hace ping y devuelve la base pedida. El caller cierra con client.Disconnect.
func Open(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	if strings.TrimSpace(dbName) == "" {
		return nil, nil, fmt.Errorf("mongo: database name required")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(dbName), nil
}

// idCandidates: los ids de referencia pueden estar guardados como ObjectID o como string.
// Se consulta por ambas formas.
func idCandidates(id string) []any {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	out := []any{id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		out = append(out, oid)
	}
	return out
}

// idString normaliza un id leído del documento (ObjectID, string o nada).
func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	default:
		return ""
	}
}

// Formatos de fecha que aparecen guardados como string.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// dateValue lee una fecha guardada como BSON datetime, timestamp o string.
// Campo ausente, null o string no parseable => ok=false (el registro sigue, sin fecha).
func dateValue(v bson.RawValue) (time.Time, bool) {
	switch v.Type {
	case bson.TypeDateTime:
		t := v.Time().UTC()
		return t, !t.IsZero()
	case bson.TypeTimestamp:
		secs, _ := v.Timestamp()
		return time.Unix(int64(secs), 0).UTC(), true
	case bson.TypeString:
		s := strings.TrimSpace(v.StringValue())
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}
