package telemetry

import (
	"context"
	"time"

	"roboid/connector"
	"roboid/eventbus"
	"roboid/hamster"
	"roboid/shared"

	"go.mongodb.org/mongo-driver/bson"
)

// eventDocument is the shape persisted for every bus event this logger
// observes. Kept deliberately flat, mirroring the teacher's
// registration documents in database/mongodb.go's example usage.
type eventDocument struct {
	Type     string      `bson:"type"`
	RobotIdx int         `bson:"robot_index"`
	Payload  interface{} `bson:"payload"`
	Recorded time.Time   `bson:"recorded_at"`
}

// Logger subscribes to a shared event bus and persists connection-state
// and line-tracer-completion events to MongoDB, plus keeps a rolling
// statistical summary of the proximity/floor readings it is handed.
// Entirely optional: a process that never calls NewLogger never dials
// MongoDB, and nothing in the core runtime depends on this package.
type Logger struct {
	db   *Handler
	bus  *eventbus.Bus
	subs []string

	readings *Readings
}

// NewLogger connects to MongoDB at uri/dbName and subscribes to bus for
// connection-state and line-tracer-completion events. Returns an error
// if the connection fails; the caller decides whether that's fatal.
func NewLogger(ctx context.Context, bus *eventbus.Bus, uri, dbName string) (*Logger, error) {
	db := &Handler{}
	if err := db.Start(ctx, uri, dbName); err != nil {
		return nil, err
	}

	l := &Logger{db: db, bus: bus, readings: NewReadings(200)}

	l.subs = append(l.subs, bus.Subscribe(eventbus.TypeConnectionStateChanged, l.onConnectionStateChanged))
	l.subs = append(l.subs, bus.Subscribe(eventbus.TypeLineTracerCompleted, l.onLineTracerCompleted))

	return l, nil
}

// Close unsubscribes from the bus and disconnects from MongoDB.
func (l *Logger) Close() {
	for _, id := range l.subs {
		l.bus.Unsubscribe(eventbus.TypeConnectionStateChanged, id)
		l.bus.Unsubscribe(eventbus.TypeLineTracerCompleted, id)
	}
	l.db.Stop()
}

func (l *Logger) onConnectionStateChanged(evt eventbus.Event) {
	robotIdx := -1
	if payload, ok := evt.Data.(connector.ConnectionStateChanged); ok {
		robotIdx = payload.RobotIndex
	}
	l.insert(evt.Type, robotIdx, evt.Data)
}

func (l *Logger) onLineTracerCompleted(evt eventbus.Event) {
	robotIdx := -1
	if payload, ok := evt.Data.(hamster.LineTracerCompleted); ok {
		robotIdx = payload.RobotIndex
	}
	l.insert(evt.Type, robotIdx, evt.Data)
}

func (l *Logger) insert(eventType string, robotIdx int, payload interface{}) {
	collection := l.db.Collection("events")
	if collection == nil {
		return
	}
	doc := eventDocument{
		Type:     eventType,
		RobotIdx: robotIdx,
		Payload:  payload,
		Recorded: time.Now(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := collection.InsertOne(ctx, bsonDoc(doc)); err != nil {
		shared.DebugPrint("telemetry: failed to insert event: %v", err)
	}
}

func bsonDoc(doc eventDocument) bson.M {
	return bson.M{
		"type":        doc.Type,
		"robot_index": doc.RobotIdx,
		"payload":     doc.Payload,
		"recorded_at": doc.Recorded,
	}
}

// Observe feeds one proximity/floor sensor sample into the rolling
// statistics window.
func (l *Logger) Observe(sample float64) {
	l.readings.Add(sample)
}

// Stats returns the current rolling summary.
func (l *Logger) Stats() Summary {
	return l.readings.Summary()
}
