package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/rovlab/terranav/pkg/http/router/routerhelper"
	"github.com/rovlab/terranav/pkg/util"
	"go.uber.org/zap"
)

type planningAPI struct {
	planningService PlanningService
	log             *zap.Logger
}

func New(planningService PlanningService, log *zap.Logger) *planningAPI {
	return &planningAPI{
		planningService: planningService,
		log:             log,
	}
}

func (api *planningAPI) Routes(group *helper.RouteGroup) {
	group.POST("/plan", api.plan)
	group.GET("/stateCost", api.stateCost)
	group.POST("/motionCost", api.motionCost)
	group.POST("/mapUpdate", api.mapUpdate)
}

func (api *planningAPI) validateRequest(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return false
	}
	return true
}

func (api *planningAPI) plan(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request planRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	envType := api.planningService.EnvironmentType()
	budget := time.Duration(request.BudgetSeconds * float64(time.Second))

	sol, err := api.planningService.Plan(r.Context(), request.Start.toState(envType),
		request.Goal.toState(envType), budget)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewPlanResponse(sol)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *planningAPI) stateCost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request stateRequest
		err     error
	)

	query := r.URL.Query()

	request.X, err = util.StringToFloat64(query.Get("x"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("x is required and must be a valid float"))
		return
	}
	request.Y, err = util.StringToFloat64(query.Get("y"))
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("y is required and must be a valid float"))
		return
	}
	if raw := query.Get("yaw"); raw != "" {
		request.Yaw, err = util.StringToFloat64(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("yaw must be a valid float"))
			return
		}
	}
	if raw := query.Get("footprint_class"); raw != "" {
		request.FootprintClass, err = strconv.Atoi(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("footprint_class must be a valid int"))
			return
		}
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	cost, err := api.planningService.StateCost(request.toState(api.planningService.EnvironmentType()))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCostResponse(cost)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *planningAPI) motionCost(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request motionCostRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	envType := api.planningService.EnvironmentType()
	cost, err := api.planningService.MotionCost(request.From.toState(envType), request.To.toState(envType))
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCostResponse(cost)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *planningAPI) mapUpdate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request mapUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := r.Body.Close(); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if !api.validateRequest(w, r, request) {
		return
	}

	if err := api.planningService.ApplyMapUpdates(request.toCellUpdates()); err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": mapUpdateResponse{UpdatedCells: len(request.Updates)}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
