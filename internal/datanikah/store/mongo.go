package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/component/mongodb"
)

// mongoStore implements Factory on MongoDB.
type mongoStore struct {
	client *mongodb.Client
}

var _ Factory = (*mongoStore)(nil)

// NewMongoFactory returns a Factory backed by client.
func NewMongoFactory(client *mongodb.Client) Factory {
	return &mongoStore{client: client}
}

func (s *mongoStore) Records() RecordStore {
	return &mongoRecords{coll: s.client.Collection(CollectionMarriages)}
}

func (s *mongoStore) Users() UserStore {
	return &mongoUsers{coll: s.client.Collection(CollectionUsers)}
}

func (s *mongoStore) Close() error {
	return s.client.Close()
}

// EnsureIndexes 创建查询所需的索引，可重复执行。
func EnsureIndexes(ctx context.Context, client *mongodb.Client) error {
	records := []mongo.IndexModel{
		{Keys: bson.D{{Key: FieldNoAktanikah, Value: 1}, {Key: FieldNamaKUA, Value: 1}}},
		{Keys: bson.D{{Key: FieldSearchNoAktanikah, Value: 1}}},
		{Keys: bson.D{{Key: FieldSearchNamaSuami, Value: 1}}},
		{Keys: bson.D{{Key: FieldSearchNamaIstri, Value: 1}}},
		{Keys: bson.D{{Key: FieldSearchNamaKUA, Value: 1}, {Key: FieldCreatedAt, Value: -1}}},
		{Keys: bson.D{{Key: FieldTanggalAkad, Value: 1}}},
		{Keys: bson.D{{Key: FieldCreatedAt, Value: -1}}},
	}
	if _, err := client.Collection(CollectionMarriages).Indexes().CreateMany(ctx, records); err != nil {
		return fmt.Errorf("create %s indexes: %w", CollectionMarriages, err)
	}

	users := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := client.Collection(CollectionUsers).Indexes().CreateOne(ctx, users); err != nil {
		return fmt.Errorf("create %s indexes: %w", CollectionUsers, err)
	}
	return nil
}

// toBSON groups filters by field: {field: {$gte: a, $lte: b}}.
func toBSON(filters []Filter) bson.M {
	doc := bson.M{}
	for _, f := range filters {
		if f.Op == OpEq {
			doc[f.Field] = f.Value
			continue
		}
		ops, ok := doc[f.Field].(bson.M)
		if !ok {
			ops = bson.M{}
			doc[f.Field] = ops
		}
		ops[string(f.Op)] = f.Value
	}
	return doc
}

type mongoRecords struct {
	coll *mongo.Collection
}

func (s *mongoRecords) Find(ctx context.Context, q Query) ([]*model.MarriageRecord, error) {
	opts := options.Find()
	if q.SortBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.SortBy, Value: dir}, {Key: "_id", Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.coll.Find(ctx, toBSON(q.Filters), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", CollectionMarriages, err)
	}
	defer cursor.Close(ctx)

	records := make([]*model.MarriageRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", CollectionMarriages, err)
	}
	return records, nil
}

func (s *mongoRecords) Count(ctx context.Context, filters ...Filter) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, toBSON(filters))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", CollectionMarriages, err)
	}
	return n, nil
}

func (s *mongoRecords) FindByKey(ctx context.Context, noAktanikah, namaKUA string) (*model.MarriageRecord, error) {
	var r model.MarriageRecord
	err := s.coll.FindOne(ctx, bson.M{FieldNoAktanikah: noAktanikah, FieldNamaKUA: namaKUA}).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by key: %w", CollectionMarriages, err)
	}
	return &r, nil
}

func (s *mongoRecords) Insert(ctx context.Context, r *model.MarriageRecord) error {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Search = searchKeys(r)

	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return fmt.Errorf("insert %s: %w", CollectionMarriages, err)
	}
	return nil
}

type mongoUsers struct {
	coll *mongo.Collection
}

func (s *mongoUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *mongoUsers) Create(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = time.Now().UTC()

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
