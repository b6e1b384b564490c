package server

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/proposalarchitect/speakerscout/config"
	"github.com/proposalarchitect/speakerscout/internal/extract"
	"github.com/proposalarchitect/speakerscout/internal/index"
	"github.com/proposalarchitect/speakerscout/internal/profile"
	"github.com/proposalarchitect/speakerscout/internal/proposal"
	"github.com/proposalarchitect/speakerscout/internal/ranking"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/provider"
	"github.com/proposalarchitect/speakerscout/session"
	"github.com/proposalarchitect/speakerscout/tools/embedding"
	webfetch "github.com/proposalarchitect/speakerscout/tools/web_fetch"
	websearch "github.com/proposalarchitect/speakerscout/tools/web_search"
	searchmodels "github.com/proposalarchitect/speakerscout/tools/web_search/models"
)

// Service orchestrates the pipeline stages behind the score endpoint. It owns
// no HTTP concerns; handlers translate between requests and these methods.
type Service struct {
	cfg       *config.Config
	store     session.Store
	idx       *index.Index
	extractor *extract.Extractor
	profiles  *profile.Parser
	ranker    *ranking.Ranker
	proposals *proposal.Generator
	embedder  *embedding.Embedder
	searcher  websearch.WebSearcher
	fetcher   webfetch.WebFetcher
	logger    *log.Logger
}

func NewService(cfg *config.Config, llm provider.Provider, store session.Store, searcher websearch.WebSearcher, fetcher webfetch.WebFetcher) *Service {
	return &Service{
		cfg:       cfg,
		store:     store,
		idx:       index.New(),
		extractor: extract.NewExtractor(llm),
		profiles:  profile.NewParser(llm),
		ranker:    ranking.NewRanker(llm),
		proposals: proposal.NewGenerator(llm),
		embedder:  embedding.NewEmbedder(llm),
		searcher:  searcher,
		fetcher:   fetcher,
		logger:    log.New(log.Writer(), "[SERVICE] ", log.LstdFlags),
	}
}

// UploadResult summarizes what one upload ingested into the session.
type UploadResult struct {
	SessionID          string `json:"session_id"`
	OpportunitiesAdded int    `json:"opportunities_added"`
	OpportunitiesTotal int    `json:"opportunities_total"`
	ProfileParsed      bool   `json:"profile_parsed"`
}

// Upload ingests raw opportunity JSON and/or profile text into a session,
// creating one when no id is given. Opportunity records that fail validation
// are dropped; everything accepted is also indexed for in-session search.
func (s *Service) Upload(ctx context.Context, sessionID, opportunitiesJSON, profileText, preferences string, keywords []string) (UploadResult, error) {
	if strings.TrimSpace(opportunitiesJSON) == "" && strings.TrimSpace(profileText) == "" {
		return UploadResult{}, fmt.Errorf("nothing to upload: provide opportunities or profile_text")
	}

	sess, err := s.ensureSession(ctx, sessionID)
	if err != nil {
		return UploadResult{}, err
	}

	res := UploadResult{SessionID: sess.ID}

	if strings.TrimSpace(opportunitiesJSON) != "" {
		added := 0
		for _, rec := range extract.Records(opportunitiesJSON, "opportunities") {
			opp, err := extract.NormalizeOpportunity(rec, keywords)
			if err != nil {
				s.logger.Printf("dropping invalid opportunity: %v", err)
				continue
			}
			sess.Opportunities = append(sess.Opportunities, opp)
			s.indexOpportunity(ctx, sess.ID, opp)
			added++
		}
		res.OpportunitiesAdded = added
	}

	if strings.TrimSpace(profileText) != "" {
		prof, err := s.profiles.Parse(ctx, profileText, preferences)
		if err != nil {
			return UploadResult{}, err
		}
		sess.Profile = &prof
		sess.Ranking = nil
		s.indexProfile(ctx, sess.ID, prof)
		res.ProfileParsed = true
	}

	if err := s.store.Put(ctx, sess); err != nil {
		return UploadResult{}, err
	}
	res.OpportunitiesTotal = len(sess.Opportunities)
	return res, nil
}

// Discover runs web search for the given keywords, optionally enriches the
// top hits with rendered page text, and extracts opportunities from the
// results into the session.
func (s *Service) Discover(ctx context.Context, sessionID string, keywords, opportunityTypes []string) (UploadResult, error) {
	if s.searcher == nil {
		return UploadResult{}, fmt.Errorf("web search is not configured")
	}
	if len(keywords) == 0 {
		return UploadResult{}, fmt.Errorf("keywords required")
	}

	sess, err := s.ensureSession(ctx, sessionID)
	if err != nil {
		return UploadResult{}, err
	}

	queries := extract.BuildQueries(keywords, opportunityTypes, s.cfg.Search.QueryTemplates)
	results := websearch.SearchAll(ctx, s.searcher, queries, s.cfg.Search.ResultsPerQuery)
	s.logger.Printf("discovery found %d results for %d queries", len(results), len(queries))
	if len(results) == 0 {
		return UploadResult{SessionID: sess.ID, OpportunitiesTotal: len(sess.Opportunities)}, nil
	}

	s.enrichResults(ctx, results)

	resp, err := s.extractor.ProcessSearchResults(ctx, extract.FormatSearchResults(results), keywords, opportunityTypes)
	if err != nil {
		return UploadResult{}, err
	}
	for _, opp := range resp.Opportunities {
		sess.Opportunities = append(sess.Opportunities, opp)
		s.indexOpportunity(ctx, sess.ID, opp)
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return UploadResult{}, err
	}
	return UploadResult{
		SessionID:          sess.ID,
		OpportunitiesAdded: len(resp.Opportunities),
		OpportunitiesTotal: len(sess.Opportunities),
	}, nil
}

// Rank scores the session's opportunities against its profile and stores the
// result, superseding any previous ranking.
func (s *Service) Rank(ctx context.Context, sessionID string) (models.RankingResult, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return models.RankingResult{}, err
	}
	if sess.Profile == nil {
		return models.RankingResult{}, fmt.Errorf("no profile uploaded for session %s", sessionID)
	}
	if len(sess.Opportunities) == 0 {
		return models.RankingResult{}, fmt.Errorf("no opportunities uploaded for session %s", sessionID)
	}

	result := s.ranker.Rank(ctx, sess.Profile.Summary, sess.Opportunities)
	sess.Ranking = &result
	if err := s.store.Put(ctx, sess); err != nil {
		return models.RankingResult{}, err
	}
	return result, nil
}

// GenerateProposal writes a proposal for one ranked opportunity.
func (s *Service) GenerateProposal(ctx context.Context, sessionID, opportunityID string) (models.Proposal, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return models.Proposal{}, err
	}
	if sess.Ranking == nil {
		return models.Proposal{}, fmt.Errorf("session %s has no ranking: run rank first", sessionID)
	}

	var target *models.RankedOpportunity
	for i := range sess.Ranking.RankedOpportunities {
		if sess.Ranking.RankedOpportunities[i].OpportunityID == opportunityID {
			target = &sess.Ranking.RankedOpportunities[i]
			break
		}
	}
	if target == nil {
		return models.Proposal{}, fmt.Errorf("opportunity %s not found in ranking", opportunityID)
	}

	p := s.proposals.Generate(ctx, *target, profileOrZero(sess.Profile))
	sess.Proposals = append(sess.Proposals, p)
	if err := s.store.Put(ctx, sess); err != nil {
		return models.Proposal{}, err
	}
	return p, nil
}

// ProposalBatch is the result of generating proposals for the top ranked
// opportunities, including the ready-to-save download rendering.
type ProposalBatch struct {
	Proposals []models.Proposal `json:"proposals"`
	Download  string            `json:"download"`
}

// GenerateAllProposals writes proposals for the top n ranked opportunities.
// n <= 0 falls back to the configured default.
func (s *Service) GenerateAllProposals(ctx context.Context, sessionID string, n int) (ProposalBatch, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return ProposalBatch{}, err
	}
	if sess.Ranking == nil {
		return ProposalBatch{}, fmt.Errorf("session %s has no ranking: run rank first", sessionID)
	}
	if n <= 0 {
		n = s.cfg.Pipeline.ProposalTopN
	}

	proposals := s.proposals.GenerateBatch(ctx, sess.Ranking.RankedOpportunities, profileOrZero(sess.Profile), n)
	sess.Proposals = append(sess.Proposals, proposals...)
	if err := s.store.Put(ctx, sess); err != nil {
		return ProposalBatch{}, err
	}
	return ProposalBatch{Proposals: proposals, Download: proposal.FormatForDownload(proposals)}, nil
}

// Search runs fused keyword and vector search over a session's indexed
// documents.
func (s *Service) Search(ctx context.Context, sessionID, query string, docType string, k int) ([]index.Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query required")
	}
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	if k <= 0 {
		k = s.cfg.Pipeline.SearchTopK
	}
	qvec := s.embedder.Embed(ctx, query)
	return s.idx.Search(sessionID, query, qvec, index.DocType(docType), k)
}

// DeleteSession removes a session and drops its index.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.idx.Drop(sessionID)
	return nil
}

func (s *Service) ensureSession(ctx context.Context, id string) (*session.Session, error) {
	if id == "" {
		return s.store.Create(ctx)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) indexOpportunity(ctx context.Context, sessionID string, opp models.Opportunity) {
	content := ranking.OpportunityText(opp)
	if err := s.idx.Upsert(sessionID, index.Document{
		ID:      opp.ID,
		DocType: index.DocOpportunity,
		Title:   opp.EventName,
		Content: content,
		Vector:  s.embedder.Embed(ctx, content),
	}); err != nil {
		s.logger.Printf("failed to index opportunity %s: %v", opp.ID, err)
	}
}

func (s *Service) indexProfile(ctx context.Context, sessionID string, prof models.Profile) {
	chunks := s.embedder.ChunkAndEmbed(ctx, prof.RawText, s.cfg.Pipeline.ChunkSize, s.cfg.Pipeline.ChunkOverlap)
	for _, c := range chunks {
		if err := s.idx.Upsert(sessionID, index.Document{
			ID:      fmt.Sprintf("%s_chunk_%d", prof.ID, c.Index),
			DocType: index.DocProfileChunk,
			Title:   prof.Name,
			Content: c.Text,
			Vector:  c.Embedding,
		}); err != nil {
			s.logger.Printf("failed to index profile chunk %d: %v", c.Index, err)
		}
	}
}

// enrichResults replaces short snippets with rendered page text when deep
// fetching is enabled. Fetch failures leave the original snippet in place.
func (s *Service) enrichResults(ctx context.Context, results []searchmodels.Result) {
	if s.fetcher == nil || !s.cfg.Fetch.Enabled {
		return
	}
	for i := range results {
		page, err := s.fetcher.Exec(ctx, results[i].URL)
		if err != nil || page.Status >= 400 || strings.TrimSpace(page.Text) == "" {
			continue
		}
		results[i].Snippet = page.Text
	}
}

func profileOrZero(p *models.Profile) models.Profile {
	if p == nil {
		return models.Profile{}
	}
	return *p
}
