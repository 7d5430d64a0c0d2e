package repository_test

import (
	"testing"

	"academy/models"
	"academy/repository"
	"academy/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db       *gorm.DB
	ai       models.Course // $49, rated 5 and 3, two enrollments
	ml       models.Course // $59, rated 4, one enrollment
	deep     models.Course // $39, unrated
	nlp      models.Course // Free, rated 5, no enrollments
	alice    models.User
	bob      models.User
}

func newCatalogFixture(t *testing.T) catalogFixture {
	db := testutil.SetupDB(t)
	f := catalogFixture{db: db}

	f.ai = testutil.CreateCourse(t, db, "Introduction to AI", "Jane Smith", "$49")
	f.ml = testutil.CreateCourse(t, db, "Machine Learning Basics", "Sarah Johnson", "$59")
	f.deep = testutil.CreateCourse(t, db, "Deep Learning with Python", "Jane Smith", "$39")
	f.nlp = testutil.CreateCourse(t, db, "Neural Networks and NLP", "Emily Davis", "Free")

	f.alice = testutil.CreateUser(t, db, "alice", models.RoleStudent)
	f.bob = testutil.CreateUser(t, db, "bob", models.RoleStudent)

	testutil.Enroll(t, db, f.alice.ID, f.ai.ID)
	testutil.Enroll(t, db, f.bob.ID, f.ai.ID)
	testutil.Enroll(t, db, f.bob.ID, f.ml.ID)

	testutil.Evaluate(t, db, f.alice.ID, f.ai.ID, 5)
	testutil.Evaluate(t, db, f.bob.ID, f.ai.ID, 3)
	testutil.Evaluate(t, db, f.bob.ID, f.ml.ID, 4)
	testutil.Evaluate(t, db, f.alice.ID, f.nlp.ID, 5)
	return f
}

func titles(stats []repository.CourseStats) []string {
	out := make([]string, len(stats))
	for i, s := range stats {
		out[i] = s.Title
	}
	return out
}

func find(t *testing.T, stats []repository.CourseStats, id uint) repository.CourseStats {
	t.Helper()
	for _, s := range stats {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("course %d not in result", id)
	return repository.CourseStats{}
}

func TestListCatalogAggregates(t *testing.T) {
	f := newCatalogFixture(t)

	stats, err := repository.ListCatalog(f.db, repository.CatalogFilter{})
	require.NoError(t, err)
	require.Len(t, stats, 4)

	ai := find(t, stats, f.ai.ID)
	require.NotNil(t, ai.AvgRating)
	assert.InDelta(t, 4.0, *ai.AvgRating, 0.001)
	assert.Equal(t, int64(2), ai.RatingCount)
	assert.Equal(t, int64(2), ai.EnrollmentCount)

	deep := find(t, stats, f.deep.ID)
	assert.Nil(t, deep.AvgRating)
	assert.Equal(t, int64(0), deep.RatingCount)
	assert.Equal(t, int64(0), deep.EnrollmentCount)

	nlp := find(t, stats, f.nlp.ID)
	assert.Equal(t, int64(1), nlp.RatingCount)
	assert.Equal(t, int64(0), nlp.EnrollmentCount)
}

func TestListCatalogDefaultsToTitleOrder(t *testing.T) {
	f := newCatalogFixture(t)

	stats, err := repository.ListCatalog(f.db, repository.CatalogFilter{SortBy: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Deep Learning with Python",
		"Introduction to AI",
		"Machine Learning Basics",
		"Neural Networks and NLP",
	}, titles(stats))
}

func TestListCatalogSorts(t *testing.T) {
	f := newCatalogFixture(t)

	tests := []struct {
		sortBy string
		want   []string
	}{
		{repository.SortRating, []string{
			"Neural Networks and NLP",
			"Introduction to AI",
			"Machine Learning Basics",
			"Deep Learning with Python",
		}},
		{repository.SortPriceLow, []string{
			"Neural Networks and NLP",
			"Deep Learning with Python",
			"Introduction to AI",
			"Machine Learning Basics",
		}},
		{repository.SortPriceHigh, []string{
			"Machine Learning Basics",
			"Introduction to AI",
			"Deep Learning with Python",
			"Neural Networks and NLP",
		}},
		{repository.SortPopular, []string{
			"Introduction to AI",
			"Machine Learning Basics",
			"Deep Learning with Python",
			"Neural Networks and NLP",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			stats, err := repository.ListCatalog(f.db, repository.CatalogFilter{SortBy: tt.sortBy})
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(stats))
		})
	}
}

func TestListCatalogFilters(t *testing.T) {
	f := newCatalogFixture(t)
	ptr := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		filter repository.CatalogFilter
		want   []string
	}{
		{"search title case-insensitive", repository.CatalogFilter{Search: "LEARNING"},
			[]string{"Deep Learning with Python", "Machine Learning Basics"}},
		{"search description", repository.CatalogFilter{Search: "nlp description"},
			[]string{"Neural Networks and NLP"}},
		{"instructor substring", repository.CatalogFilter{Instructor: "smith"},
			[]string{"Deep Learning with Python", "Introduction to AI"}},
		{"min rating excludes unrated", repository.CatalogFilter{MinRating: ptr(4)},
			[]string{"Introduction to AI", "Machine Learning Basics", "Neural Networks and NLP"}},
		{"min rating above average", repository.CatalogFilter{MinRating: ptr(4.5)},
			[]string{"Neural Networks and NLP"}},
		{"price range", repository.CatalogFilter{MinPrice: ptr(40), MaxPrice: ptr(55)},
			[]string{"Introduction to AI"}},
		{"combined", repository.CatalogFilter{Instructor: "Jane", MinRating: ptr(1)},
			[]string{"Introduction to AI"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := repository.ListCatalog(f.db, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(stats))
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	assert.Equal(t, repository.SortTitle, repository.NormalizeSort(""))
	assert.Equal(t, repository.SortTitle, repository.NormalizeSort("newest"))
	assert.Equal(t, repository.SortPopular, repository.NormalizeSort("popular"))
}

func TestRecommendSkipsEnrolledAndUnrated(t *testing.T) {
	f := newCatalogFixture(t)

	// alice is enrolled in ai only
	recs, err := repository.Recommend(f.db, f.alice.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Neural Networks and NLP", "Machine Learning Basics"}, titles(recs))
	for _, r := range recs {
		assert.NotEqual(t, f.ai.ID, r.ID)
		assert.NotEqual(t, f.deep.ID, r.ID)
		assert.Positive(t, r.RatingCount)
	}
}

func TestRecommendBreaksTiesOnRatingCountAndLimits(t *testing.T) {
	db := testutil.SetupDB(t)
	viewer := testutil.CreateUser(t, db, "viewer", models.RoleStudent)
	raters := []models.User{
		testutil.CreateUser(t, db, "r1", models.RoleStudent),
		testutil.CreateUser(t, db, "r2", models.RoleStudent),
		testutil.CreateUser(t, db, "r3", models.RoleStudent),
	}

	once := testutil.CreateCourse(t, db, "Rated once", "A", "$10")
	thrice := testutil.CreateCourse(t, db, "Rated thrice", "B", "$10")
	lower := testutil.CreateCourse(t, db, "Lower rated", "C", "$10")
	lowest := testutil.CreateCourse(t, db, "Lowest rated", "D", "$10")

	testutil.Evaluate(t, db, raters[0].ID, once.ID, 5)
	for _, r := range raters {
		testutil.Evaluate(t, db, r.ID, thrice.ID, 5)
	}
	testutil.Evaluate(t, db, raters[0].ID, lower.ID, 3)
	testutil.Evaluate(t, db, raters[0].ID, lowest.ID, 1)

	recs, err := repository.Recommend(db, viewer.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rated thrice", "Rated once", "Lower rated"}, titles(recs))
}

func TestRecommendNothingWithoutEvaluations(t *testing.T) {
	db := testutil.SetupDB(t)
	user := testutil.CreateUser(t, db, "lonely", models.RoleStudent)
	testutil.CreateCourse(t, db, "Unrated", "X", "$5")

	recs, err := repository.Recommend(db, user.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCourseStatsFor(t *testing.T) {
	f := newCatalogFixture(t)

	stats, err := repository.CourseStatsFor(f.db, f.ai.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalEvaluations)
	assert.Equal(t, int64(2), stats.TotalEnrollments)
	require.NotNil(t, stats.AvgRating)
	assert.InDelta(t, 4.0, *stats.AvgRating, 0.001)

	stats, err = repository.CourseStatsFor(f.db, f.deep.ID)
	require.NoError(t, err)
	assert.Equal(t, repository.Stats{}, stats)

	stats, err = repository.CourseStatsFor(f.db, 9999)
	require.NoError(t, err)
	assert.Equal(t, repository.Stats{}, stats)
}

func TestListInstructors(t *testing.T) {
	f := newCatalogFixture(t)

	summaries, err := repository.ListInstructors(f.db)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "Emily Davis", summaries[0].Instructor)
	assert.Equal(t, "Jane Smith", summaries[1].Instructor)
	assert.Equal(t, "Sarah Johnson", summaries[2].Instructor)

	jane := summaries[1]
	assert.Equal(t, int64(2), jane.CourseCount)
	assert.Equal(t, int64(2), jane.TotalStudents)
	require.NotNil(t, jane.AvgRating)
	assert.InDelta(t, 4.0, *jane.AvgRating, 0.001)
	require.Len(t, jane.Courses, 2)
	assert.Equal(t, "Deep Learning with Python", jane.Courses[0].Title)

	emily := summaries[0]
	assert.Equal(t, int64(0), emily.TotalStudents)
	require.NotNil(t, emily.AvgRating)
	assert.InDelta(t, 5.0, *emily.AvgRating, 0.001)
}

func TestListInstructorsUnrated(t *testing.T) {
	db := testutil.SetupDB(t)
	testutil.CreateCourse(t, db, "Solo", "Nobody Rated", "$1")

	summaries, err := repository.ListInstructors(db)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Nil(t, summaries[0].AvgRating)
	assert.Equal(t, int64(1), summaries[0].CourseCount)
}

func TestListInstructorNames(t *testing.T) {
	f := newCatalogFixture(t)

	names, err := repository.ListInstructorNames(f.db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Emily Davis", "Jane Smith", "Sarah Johnson"}, names)
}
