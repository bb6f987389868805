package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shpitdev/air-assist/internal/recommend"
)

// RecommendOutput is the output schema for recommend_trip.
type RecommendOutput struct {
	Homes         []recommend.Item `json:"homes" jsonschema:"homes to stay in, the featured one first"`
	PlacesToVisit []recommend.Item `json:"placesToVisit" jsonschema:"sights and activities"`
	PlacesToEat   []recommend.Item `json:"placesToEat" jsonschema:"restaurants and food spots"`
	Advisory      bool             `json:"advisory" jsonschema:"true when the destination usually needs vaccinations or health precautions"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend_trip",
		Description: "Recommend homes, places to visit and places to eat for a trip questionnaire. Unavailable fields are \"unknown\".",
	}, s.handleRecommend)
}

func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input recommend.Questionnaire,
) (*mcp.CallToolResult, RecommendOutput, error) {
	set, err := s.rec.Run(ctx, input.Answers())
	if err != nil {
		return nil, RecommendOutput{}, err
	}
	return nil, RecommendOutput{
		Homes:         set.Homes,
		PlacesToVisit: set.PlacesToVisit,
		PlacesToEat:   set.PlacesToEat,
		Advisory:      set.Advisory,
	}, nil
}
