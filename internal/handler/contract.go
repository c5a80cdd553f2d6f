package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mbruton/festival-manager/internal/contractdoc"
	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/model"
	"github.com/mbruton/festival-manager/internal/queue"
	"github.com/mbruton/festival-manager/internal/repository"
	"github.com/mbruton/festival-manager/internal/service"
)

// ContractHandler serves contract templates, the artist contract lifecycle
// and the public signing page. Signing publishes a contract.signed event.
type ContractHandler struct {
	Contracts    *repository.ContractRepo
	Artists      *repository.ArtistRepo
	Festivals    *repository.FestivalRepo
	Performances *repository.PerformanceRepo
	Events       service.Publisher
}

func NewContractHandler(contracts *repository.ContractRepo, artists *repository.ArtistRepo,
	festivals *repository.FestivalRepo, performances *repository.PerformanceRepo,
	events service.Publisher) *ContractHandler {
	return &ContractHandler{
		Contracts:    contracts,
		Artists:      artists,
		Festivals:    festivals,
		Performances: performances,
		Events:       events,
	}
}

// --- templates ---

func (h *ContractHandler) ListTemplates(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	templates, err := h.Contracts.ListTemplates(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, templates)
}

func (h *ContractHandler) GetTemplate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid template id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	template, err := h.Contracts.GetTemplate(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func (h *ContractHandler) CreateTemplate(c echo.Context) error {
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Content     string  `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		return badRequest(c, "Name and content are required")
	}
	creator := middleware.CurrentUser(c).ID

	ctx, cancel := dbCtx(c)
	defer cancel()

	template, err := h.Contracts.CreateTemplate(ctx, req.Name, req.Description, req.Content, &creator)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, template)
}

func (h *ContractHandler) UpdateTemplate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid template id")
	}
	var req struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		Content     string  `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Content) == "" {
		return badRequest(c, "Name and content are required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	template, err := h.Contracts.UpdateTemplate(ctx, id, req.Name, req.Description, req.Content)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, template)
}

func (h *ContractHandler) DeleteTemplate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid template id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Contracts.DeleteTemplate(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Template deleted successfully"})
}

// --- contracts ---

// List returns contracts for an artist (artist_id) or a whole festival
// (festival_id); one of the two is required.
func (h *ContractHandler) List(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	if s := c.QueryParam("artist_id"); s != "" {
		artistID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid artist_id")
		}
		contracts, err := h.Contracts.ListByArtist(ctx, artistID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, contracts)
	}
	if festivalID, ok := festivalIDQuery(c); ok {
		contracts, err := h.Contracts.ListByFestival(ctx, festivalID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, contracts)
	}
	return badRequest(c, "artist_id or festival_id query parameter is required")
}

func (h *ContractHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.GetByID(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Create(c echo.Context) error {
	var req struct {
		ArtistID      int64   `json:"artist_id"`
		TemplateID    *int64  `json:"template_id"`
		CustomContent *string `json:"custom_content"`
		Deadline      *string `json:"deadline"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ArtistID == 0 {
		return badRequest(c, "Artist id is required")
	}
	if req.TemplateID == nil && (req.CustomContent == nil || strings.TrimSpace(*req.CustomContent) == "") {
		return badRequest(c, "Either template_id or custom_content is required")
	}
	creator := middleware.CurrentUser(c).ID

	ctx, cancel := dbCtx(c)
	defer cancel()

	// The artist must exist before a contract can reference it.
	if _, err := h.Artists.GetByID(ctx, req.ArtistID); err != nil {
		return fail(c, err)
	}
	contract, err := h.Contracts.Create(ctx, req.ArtistID, req.TemplateID, req.CustomContent, req.Deadline, &creator)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, contract)
}

func (h *ContractHandler) Send(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.Send(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"contract":     contract,
		"signing_path": signingPath(contract.SecureToken),
	})
}

func (h *ContractHandler) Resend(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.Resend(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"contract":     contract,
		"signing_path": signingPath(contract.SecureToken),
	})
}

func (h *ContractHandler) Amend(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	var req struct {
		Content  string  `json:"content"`
		Deadline *string `json:"deadline"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return badRequest(c, "Content is required")
	}
	editor := middleware.CurrentUser(c).ID

	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.Amend(ctx, id, req.Content, req.Deadline, &editor)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Void(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.Void(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, contract)
}

func (h *ContractHandler) Delete(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Contracts.Delete(ctx, id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Contract deleted successfully"})
}

func (h *ContractHandler) Versions(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return badRequest(c, "Invalid contract id")
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Contracts.GetByID(ctx, id); err != nil {
		return fail(c, err)
	}
	versions, err := h.Contracts.Versions(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, versions)
}

// --- public signing ---

// View renders a contract for its public signing link. The first open of a
// sent contract marks it viewed.
func (h *ContractHandler) View(c echo.Context) error {
	token := c.Param("token")
	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.GetByToken(ctx, token)
	if err != nil {
		return fail(c, err)
	}
	if contract.Status == model.ContractSent {
		if err := h.Contracts.MarkViewed(ctx, contract.ID); err != nil {
			return fail(c, err)
		}
		contract, err = h.Contracts.GetByID(ctx, contract.ID)
		if err != nil {
			return fail(c, err)
		}
	}

	content, err := h.renderContent(c, contract)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"contract": echo.Map{
			"artist_name": contract.ArtistName,
			"status":      contract.Status,
			"deadline":    contract.Deadline,
			"sent_at":     contract.SentAt,
			"viewed_at":   contract.ViewedAt,
			"signed_at":   contract.SignedAt,
		},
		"content":         content,
		"deadline_passed": repository.DeadlinePassed(contract.Deadline, time.Now()),
	})
}

// Sign records the signature submitted through the public link and emits a
// contract.signed event. Event delivery is best-effort.
func (h *ContractHandler) Sign(c echo.Context) error {
	token := c.Param("token")
	var req struct {
		SignatureData string  `json:"signature_data"`
		SignatureName *string `json:"signature_name"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if strings.TrimSpace(req.SignatureData) == "" {
		return badRequest(c, "Signature is required")
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	contract, err := h.Contracts.Sign(ctx, token, req.SignatureData, req.SignatureName, time.Now())
	if err != nil {
		return fail(c, err)
	}

	ev := queue.ContractSignedEvent{
		ContractID: contract.ID,
		ArtistID:   contract.ArtistID,
		ArtistName: contract.ArtistName,
		FestivalID: contract.FestivalID,
	}
	if contract.SignatureName != nil {
		ev.SignatureName = *contract.SignatureName
	}
	if contract.SignedAt != nil {
		ev.SignedAt = *contract.SignedAt
	}
	_ = h.Events.ContractSigned(ctx, ev)

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Contract signed successfully",
		"contract": contract,
	})
}

func signingPath(token string) string {
	return "/api/contracts/sign/" + token
}

// renderContent fills the contract's placeholders with the artist's current
// booking details: earliest non-cancelled performance, festival venue and
// agreed fee.
func (h *ContractHandler) renderContent(c echo.Context, contract *model.ArtistContract) (string, error) {
	ctx, cancel := dbCtx(c)
	defer cancel()

	artist, err := h.Artists.GetByID(ctx, contract.ArtistID)
	if err != nil {
		return "", err
	}
	festival, err := h.Festivals.GetByID(ctx, artist.FestivalID)
	if err != nil {
		return "", err
	}

	data := contractdoc.Data{
		FestivalName:          festival.Name,
		ArtistName:            artist.Name,
		ArtistContact:         artist.ContactName,
		Fee:                   artist.Fee,
		TechnicalRequirements: artist.TechnicalRequirements,
		RiderRequirements:     artist.RiderRequirements,
		Now:                   time.Now(),
	}
	if festival.VenueName != nil {
		data.PerformanceVenue = festival.VenueName
	} else {
		data.PerformanceVenue = festival.Location
	}

	performances, err := h.Performances.List(ctx, artist.FestivalID, nil, nil)
	if err != nil {
		return "", err
	}
	for i := range performances {
		p := &performances[i]
		if p.ArtistID != artist.ID || p.Status == model.PerformanceCancelled {
			continue
		}
		data.PerformanceDate = &p.PerformanceDate
		data.PerformanceTime = &p.StartTime
		stage := p.StageAreaName
		if stage != "" {
			data.PerformanceVenue = &stage
		}
		break
	}

	return contractdoc.Fill(contract.Content, data), nil
}
