// Copyright (C) 2026 the security-vulnogram authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package controllers

import (
	"errors"
	"fmt"

	"github.com/QPC-github/security-vulnogram/cvss"
	"github.com/QPC-github/security-vulnogram/dtos"
	"github.com/QPC-github/security-vulnogram/shared"
	"github.com/QPC-github/security-vulnogram/workflow"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CveController struct {
	service shared.CveRecordService
}

func NewCveController(service shared.CveRecordService) *CveController {
	return &CveController{service: service}
}

// httpError maps the workflow error taxonomy onto status codes. A denial is
// an expected 403, a missing owner is a data fault and stays a 500 so it
// shows up in error tracking.
func httpError(err error) error {
	var denied *workflow.AccessDeniedError
	switch {
	case errors.As(err, &denied):
		return echo.NewHTTPError(403, denied.Error())
	case errors.Is(err, workflow.ErrMissingOwner):
		return echo.NewHTTPError(500, "record is missing its owner").WithInternal(err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return echo.NewHTTPError(404, "could not find record")
	default:
		return echo.NewHTTPError(500, "could not process record").WithInternal(err)
	}
}

func (ctrl *CveController) List(ctx shared.Context) error {
	records, err := ctrl.service.List(shared.GetActor(ctx))
	if err != nil {
		return httpError(err)
	}

	summaries := make([]dtos.RecordSummary, 0, len(records))
	for _, record := range records {
		view := workflow.Normalize(record.Body)
		summaries = append(summaries, dtos.RecordSummary{
			CveID: record.CveID,
			State: string(view.State),
			Owner: view.Owner,
		})
	}
	return ctx.JSON(200, summaries)
}

func (ctrl *CveController) Read(ctx shared.Context) error {
	record, err := ctrl.service.Read(shared.GetActor(ctx), ctx.Param("cveID"))
	if err != nil {
		return httpError(err)
	}
	return ctx.JSON(200, map[string]any(record.Body))
}

func (ctrl *CveController) Save(ctx shared.Context) error {
	var body map[string]any
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	view := workflow.Normalize(body)
	if view.ID == "" {
		return echo.NewHTTPError(400, "record is missing its CVE id")
	}

	record, refresh, err := ctrl.service.Save(ctx.Request().Context(), shared.GetActor(ctx), body)
	if err != nil {
		return httpError(err)
	}

	return ctx.JSON(200, dtos.SaveRecordResponse{
		CveID:   record.CveID,
		State:   string(workflow.Normalize(record.Body).State),
		Refresh: refresh,
	})
}

func (ctrl *CveController) Delete(ctx shared.Context) error {
	if err := ctrl.service.Delete(shared.GetActor(ctx), ctx.Param("cveID")); err != nil {
		return httpError(err)
	}
	return ctx.NoContent(200)
}

func (ctrl *CveController) Comment(ctx shared.Context) error {
	var req dtos.CommentRequest
	if err := ctx.Bind(&req); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}
	if err := shared.V.Struct(req); err != nil {
		return echo.NewHTTPError(400, fmt.Sprintf("could not validate request: %s", err.Error()))
	}

	if err := ctrl.service.Comment(ctx.Request().Context(), shared.GetActor(ctx), ctx.Param("cveID"), req.Text); err != nil {
		return httpError(err)
	}
	return ctx.NoContent(200)
}

// PublicJSON is the only unauthenticated record endpoint. It answers with the
// same body for absent, hidden and malformed lookups so nothing about
// non-public records leaks.
func (ctrl *CveController) PublicJSON(ctx shared.Context) error {
	body, err := ctrl.service.PublicJSON(ctx.Param("cveID"))
	if err != nil {
		return ctx.JSON(200, map[string]string{"error": shared.ErrNoDocument.Error()})
	}
	return ctx.JSON(200, body)
}

// Score runs a metric selection through the base score engine for the record
// editor. Incomplete selections are a normal answer here, not an error.
func (ctrl *CveController) Score(ctx shared.Context) error {
	var vector cvss.Vector
	if err := ctx.Bind(&vector); err != nil {
		return echo.NewHTTPError(400, "unable to process request").WithInternal(err)
	}

	result, ok := cvss.Calculate(vector)
	if !ok {
		return ctx.JSON(200, dtos.ScoreResponse{Defined: false})
	}
	return ctx.JSON(200, dtos.ScoreResponse{
		Defined:      true,
		BaseScore:    result.BaseScore,
		BaseSeverity: string(result.BaseSeverity),
		VectorString: result.VectorString,
	})
}
