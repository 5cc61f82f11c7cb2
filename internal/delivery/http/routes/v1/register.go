package v1

import (
	"github.com/gofiber/fiber/v3"

	"github.com/suawasthi/job-recom/internal/delivery/http/handler"
	"github.com/suawasthi/job-recom/internal/usecase"
)

// Deps carries the constructed usecases into the route tree. The wiring
// itself happens in the app container so handlers stay free of
// infrastructure concerns.
type Deps struct {
	Jobs       usecase.JobUsecase
	Candidates usecase.CandidateUsecase
	Matcher    usecase.MatchUsecase
	Recommend  usecase.RecommendationUsecase
	Feedback   usecase.FeedbackUsecase
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jobHandler := handler.NewJobHandler(deps.Jobs, deps.Recommend)
	candidateHandler := handler.NewCandidateHandler(deps.Candidates, deps.Recommend, deps.Matcher)
	matchHandler := handler.NewMatchHandler(deps.Matcher)
	feedbackHandler := handler.NewFeedbackHandler(deps.Feedback)

	jobHandler.RegisterRoutes(r)
	candidateHandler.RegisterRoutes(r)
	matchHandler.RegisterRoutes(r)
	feedbackHandler.RegisterRoutes(r)
}
