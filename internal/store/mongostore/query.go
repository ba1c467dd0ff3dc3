package mongostore

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/developia-II/feedback-collector/internal/models"
)

// buildFilter matches the search term as a literal, case-insensitive
// substring of name or message.
func buildFilter(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	pattern := regexp.QuoteMeta(search)
	return bson.M{"$or": []bson.M{
		{"name": bson.M{"$regex": pattern, "$options": "i"}},
		{"message": bson.M{"$regex": pattern, "$options": "i"}},
	}}
}

func buildSort(q models.ListQuery) bson.D {
	dir := -1
	if q.Order == models.OrderAsc {
		dir = 1
	}
	return bson.D{
		{Key: string(q.SortBy), Value: dir},
		{Key: "_id", Value: dir},
	}
}

func averagePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avgRating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}
}

func distributionPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rating"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}
