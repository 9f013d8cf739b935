package repository

import (
	"context"
	"sync"
	"time"

	"main/config"
	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// RemindersRepo provides read access to the reminder database. It backs the
// status evaluation with list enumeration and the three predicate fetches
// (all, completed in range, incomplete due in range).
type RemindersRepo struct {
	ListsCollection     *mongo.Collection
	RemindersCollection *mongo.Collection

	client     *mongo.Client
	authMu     sync.Mutex
	authStatus model.AuthorizationStatus
}

// GetRemindersRepo retrieves the MongoDB collections for reminders and lists
func GetRemindersRepo(client *mongo.Client) *RemindersRepo {
	dbConfig := config.LoadDatabaseConfig()
	listsCollection := utils.GetEnvAsString("REMINDER_LISTS_COLLECTION", "reminder_lists")
	remindersCollection := utils.GetEnvAsString("REMINDERS_COLLECTION", "reminders")
	return &RemindersRepo{
		ListsCollection:     client.Database(dbConfig.DatabaseName).Collection(listsCollection),
		RemindersCollection: client.Database(dbConfig.DatabaseName).Collection(remindersCollection),
		client:              client,
		authStatus:          model.AuthorizationNotDetermined,
	}
}

// AuthorizationStatus returns the last known access status without touching
// the database.
func (r *RemindersRepo) AuthorizationStatus() model.AuthorizationStatus {
	r.authMu.Lock()
	defer r.authMu.Unlock()
	return r.authStatus
}

// RequestAccess probes the reminder database and records the resulting
// access status.
func (r *RemindersRepo) RequestAccess(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.client.Ping(pingCtx, readpref.Primary())

	r.authMu.Lock()
	defer r.authMu.Unlock()
	if err != nil {
		r.authStatus = model.AuthorizationDenied
		return err
	}
	r.authStatus = model.AuthorizationAuthorized
	return nil
}

// VerifyAuthorization resolves the current access status, requesting access
// first when it has not been determined yet.
func (r *RemindersRepo) VerifyAuthorization(ctx context.Context) (model.AuthorizationStatus, error) {
	if r.AuthorizationStatus() == model.AuthorizationNotDetermined {
		if err := r.RequestAccess(ctx); err != nil {
			utils.TrackError("database", "reminder_access_denied")
			return model.AuthorizationDenied, nil
		}
	}
	return r.AuthorizationStatus(), nil
}

// AllLists retrieves every reminder list
func (r *RemindersRepo) AllLists(ctx context.Context) ([]*model.ReminderList, error) {
	timer := utils.TrackDBOperation("find", "reminder_lists")
	defer timer.ObserveDuration()

	cursor, err := r.ListsCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.TrackError("database", "list_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []*model.ReminderList
	if err = cursor.All(ctx, &lists); err != nil {
		utils.TrackError("database", "list_decode_failed")
		return nil, err
	}
	return lists, nil
}

// FetchAll retrieves all reminders, optionally restricted to the given lists
func (r *RemindersRepo) FetchAll(ctx context.Context, listIDs []string) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	return r.fetch(ctx, withListFilter(bson.M{}, listIDs))
}

// FetchCompletedInRange retrieves reminders completed within [lower, upper],
// optionally restricted to the given lists.
func (r *RemindersRepo) FetchCompletedInRange(ctx context.Context, lower, upper time.Time, listIDs []string) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{
		"complete":     true,
		"completed_at": bson.M{"$gte": lower, "$lte": upper},
	}
	return r.fetch(ctx, withListFilter(filter, listIDs))
}

// FetchIncompleteDueInRange retrieves incomplete reminders with a due date
// within [lower, upper], optionally restricted to the given lists.
func (r *RemindersRepo) FetchIncompleteDueInRange(ctx context.Context, lower, upper time.Time, listIDs []string) ([]*model.Reminder, error) {
	timer := utils.TrackDBOperation("find", "reminders")
	defer timer.ObserveDuration()

	filter := bson.M{
		"complete": false,
		"due_date": bson.M{"$gte": lower, "$lte": upper},
	}
	return r.fetch(ctx, withListFilter(filter, listIDs))
}

// helper functions

func (r *RemindersRepo) fetch(ctx context.Context, filter bson.M) ([]*model.Reminder, error) {
	cursor, err := r.RemindersCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "reminder_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var reminders []*model.Reminder
	if err = cursor.All(ctx, &reminders); err != nil {
		utils.TrackError("database", "reminder_decode_failed")
		return nil, err
	}
	return reminders, nil
}

func withListFilter(filter bson.M, listIDs []string) bson.M {
	if len(listIDs) > 0 {
		filter["list_id"] = bson.M{"$in": listIDs}
	}
	return filter
}
