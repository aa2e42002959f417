package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/billingcat/clients/dto"
	"github.com/billingcat/clients/validation"
	"github.com/go-playground/form/v4"
	"github.com/labstack/echo/v4"
)

// ClientService is what the handlers need from the service layer.
// *service.ClientService implements it.
type ClientService interface {
	SaveClient(ctx context.Context, in dto.ClientDTO) (uint, error)
	FindAll(ctx context.Context) ([]dto.ClientDTO, error)
	FindOneByID(ctx context.Context, id uint) (dto.ClientDTO, error)
	SaveContact(ctx context.Context, in dto.ContactDTO, clientID uint) (uint, error)
	FindClientContacts(ctx context.Context, clientID uint, typ string) ([]dto.ContactDTO, error)
	ExportWorkbook(ctx context.Context) (*bytes.Buffer, error)
}

// InputValidator checks request bodies before they reach the service.
// *validation.Validator implements it.
type InputValidator interface {
	ValidateClient(ctx context.Context, c dto.ClientDTO) ([]dto.FieldError, error)
	ValidateContact(c dto.ContactDTO) []dto.FieldError
}

// ClientController serves the /client routes.
type ClientController struct {
	svc      ClientService
	validate InputValidator
	logger   *slog.Logger
	query    *form.Decoder
}

// NewClientController wires the handlers to their collaborators.
func NewClientController(svc ClientService, v InputValidator, logger *slog.Logger) *ClientController {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientController{
		svc:      svc,
		validate: v,
		logger:   logger,
		query:    form.NewDecoder(),
	}
}

// Register adds all client routes to e. The static export path is
// registered before /:id so it is never read as an ID.
func (ctrl *ClientController) Register(e *echo.Echo) {
	g := e.Group("/client")
	g.POST("/add", ctrl.addClient)
	g.GET("", ctrl.listClients)
	g.GET("/export.xlsx", ctrl.exportClients)
	g.GET("/:id", ctrl.getClient)
	g.POST("/:id/contact", ctrl.addContact)
	g.GET("/:id/contacts", ctrl.listContacts)
}

func (ctrl *ClientController) log(c echo.Context) *slog.Logger {
	if l, ok := c.Get("logger").(*slog.Logger); ok && l != nil {
		return l
	}
	return ctrl.logger
}

// addClient handles POST /client/add
func (ctrl *ClientController) addClient(c echo.Context) error {
	var in dto.ClientDTO
	if err := bindBody(c, &in); err != nil {
		return err
	}

	ctx := c.Request().Context()
	fields, err := ctrl.validate.ValidateClient(ctx, in)
	if err != nil {
		return ErrInternal(err)
	}
	if len(fields) > 0 {
		return validation.Errors(fields)
	}

	id, err := ctrl.svc.SaveClient(ctx, in)
	if err != nil {
		return err
	}
	ctrl.log(c).Info("client added", "client_id", id)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/client/%d", id))
	return c.NoContent(http.StatusOK)
}

// listClients handles GET /client
func (ctrl *ClientController) listClients(c echo.Context) error {
	clients, err := ctrl.svc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewClientResponse(clients))
}

// getClient handles GET /client/:id
func (ctrl *ClientController) getClient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	client, err := ctrl.svc.FindOneByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	c.Response().Header().Set("ETag", fmt.Sprintf(`W/"client-%d-%d"`, client.ID, client.UpdatedAt.Unix()))
	return respond(c, http.StatusOK, client)
}

// addContact handles POST /client/:id/contact
func (ctrl *ClientController) addContact(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return err
	}

	var in dto.ContactDTO
	if err := bindBody(c, &in); err != nil {
		return err
	}
	if fields := ctrl.validate.ValidateContact(in); len(fields) > 0 {
		return validation.Errors(fields)
	}

	id, err := ctrl.svc.SaveContact(c.Request().Context(), in, clientID)
	if err != nil {
		return err
	}
	ctrl.log(c).Info("contact added", "client_id", clientID, "contact_id", id)
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/client/%d/contacts", clientID))
	return c.NoContent(http.StatusOK)
}

type contactListQuery struct {
	Type string `form:"type"`
}

// listContacts handles GET /client/:id/contacts?type=
func (ctrl *ClientController) listContacts(c echo.Context) error {
	clientID, err := parseID(c)
	if err != nil {
		return err
	}

	var q contactListQuery
	if err := ctrl.query.Decode(&q, c.QueryParams()); err != nil {
		return ErrInvalid(err, "invalid query parameters")
	}

	contacts, err := ctrl.svc.FindClientContacts(c.Request().Context(), clientID, q.Type)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, dto.NewContactResponse(contacts))
}

// exportClients handles GET /client/export.xlsx
func (ctrl *ClientController) exportClients(c echo.Context) error {
	buf, err := ctrl.svc.ExportWorkbook(c.Request().Context())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="clients.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// bindBody decodes the request body into v. Malformed input becomes a 400;
// other HTTP errors from the binder (413 from the body limit, 415) keep
// their status.
func bindBody(c echo.Context, v any) error {
	err := c.Bind(v)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return he
	}
	return ErrInvalid(err, "malformed request body")
}

// parseID reads the :id path parameter. Only positive integers are accepted.
func parseID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		if err == nil {
			err = fmt.Errorf("id %q out of range", raw)
		}
		field := dto.FieldError{Field: "id", Message: "must be a positive integer"}
		return 0, ErrInvalid(err, field.String(), field)
	}
	return uint(id), nil
}
