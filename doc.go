// Package marker runs a pool of graders that cooperatively mark a sequence
// of exams against a shared, mutable five-line rubric.
//
// Workers coordinate only through a shared exam state and three independent
// locks (rubric edits, question claiming, exam completion). Each worker
// reviews the rubric, claims and marks questions until none is left, then
// takes part in deciding whether the pool advances to the next exam or
// terminates:
//
//	srv := marker.New(marker.WithWorkers(3))
//	summary, err := srv.Run(ctx, "exams.txt", "rubric.txt")
//
// See the service/supervisor and service/worker packages for details.
package marker
