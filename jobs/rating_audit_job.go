package jobs

import (
	"log"

	"github.com/edumart/course_market/database"
	"github.com/edumart/course_market/models"
)

// ReconcileRatings recomputes every stored rating aggregate from the review
// rows. The workflow layer keeps aggregates consistent on write; this job
// catches drift introduced by anything that bypassed it (manual fixes,
// imports).
func ReconcileRatings() {
	log.Println("Running job: ReconcileRatings...")

	courseFixes := reconcile(
		"courses", "rating_average", "rating_count",
		`UPDATE courses c SET rating_average = agg.avg, rating_count = agg.cnt
		 FROM (SELECT course_id, COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt
		       FROM course_reviews GROUP BY course_id) agg
		 WHERE c.id = agg.course_id
		   AND (c.rating_average <> agg.avg OR c.rating_count <> agg.cnt)`,
	)

	teacherFixes := reconcile(
		"users", "teacher_rating_average", "teacher_rating_count",
		`UPDATE users u SET teacher_rating_average = agg.avg, teacher_rating_count = agg.cnt
		 FROM (SELECT teacher_id, COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS cnt
		       FROM teacher_reviews GROUP BY teacher_id) agg
		 WHERE u.id = agg.teacher_id
		   AND (u.teacher_rating_average <> agg.avg OR u.teacher_rating_count <> agg.cnt)`,
	)

	zeroed := zeroOrphanedAggregates()

	if courseFixes+teacherFixes+zeroed == 0 {
		log.Println("Rating aggregates are consistent.")
		return
	}
	log.Printf("Reconciled rating aggregates: %d course(s), %d teacher(s), %d orphaned.", courseFixes, teacherFixes, zeroed)
}

func reconcile(table, avgColumn, countColumn, query string) int64 {
	result := database.DB.Exec(query)
	if result.Error != nil {
		log.Printf("Error reconciling %s.%s/%s: %v", table, avgColumn, countColumn, result.Error)
		return 0
	}
	return result.RowsAffected
}

// Courses or teachers whose last review was deleted keep a stale aggregate;
// reset those to zero.
func zeroOrphanedAggregates() int64 {
	var affected int64

	result := database.DB.Model(&models.Course{}).
		Where("rating_count > 0 AND id NOT IN (SELECT DISTINCT course_id FROM course_reviews)").
		Updates(map[string]interface{}{"rating_average": 0, "rating_count": 0})
	if result.Error != nil {
		log.Printf("Error zeroing orphaned course aggregates: %v", result.Error)
	} else {
		affected += result.RowsAffected
	}

	result = database.DB.Model(&models.User{}).
		Where("teacher_rating_count > 0 AND id NOT IN (SELECT DISTINCT teacher_id FROM teacher_reviews)").
		Updates(map[string]interface{}{"teacher_rating_average": 0, "teacher_rating_count": 0})
	if result.Error != nil {
		log.Printf("Error zeroing orphaned teacher aggregates: %v", result.Error)
	} else {
		affected += result.RowsAffected
	}

	return affected
}
