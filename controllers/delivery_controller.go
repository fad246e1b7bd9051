package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/middleware"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/novaposhta"
	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/session"
)

type citySearchRequest struct {
	Query string `json:"query"`
}

// SearchCities feeds a keystroke into the session's debounced city lookup.
// The call returns immediately; suggestions land asynchronously and are
// polled through CitySuggestions. Inputs shorter than two characters clear
// the suggestion list without touching the Nova Poshta API.
func (ct *Controller) SearchCities(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req citySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid search payload"))
		return
	}

	lookup := sess.CityLookup(func() *novaposhta.Autocomplete {
		return ct.cityAutocomplete(sess)
	})
	lookup.Input(req.Query)

	c.JSON(http.StatusAccepted, models.SuccessResponse(c, "City search scheduled", gin.H{
		"query": req.Query,
	}))
}

func (ct *Controller) cityAutocomplete(sess *session.Session) *novaposhta.Autocomplete {
	return novaposhta.NewAutocomplete(ct.np,
		func(cities []novaposhta.City) {
			sess.SetCitySuggestions(cities, "")
		},
		func(err error) {
			logrus.Warnf("⚠️ Nova Poshta city lookup failed: %v", err)
			sess.SetCitySuggestions(nil, "Не вдалося знайти місто. Спробуйте ще раз.")
		})
}

// CitySuggestions returns the latest debounced lookup outcome.
func (ct *Controller) CitySuggestions(c *gin.Context) {
	sess := middleware.GetSession(c)
	cities, lookupErr := sess.CitySuggestions()
	if cities == nil {
		cities = []novaposhta.City{}
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "City suggestions", gin.H{
		"cities": cities,
		"error":  lookupErr,
	}))
}

// GetWarehouses lists the branches of a chosen settlement.
func (ct *Controller) GetWarehouses(c *gin.Context) {
	settlementRef := c.Query("settlementRef")
	if settlementRef == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "settlementRef is required"))
		return
	}

	warehouses, err := ct.np.GetWarehouses(c.Request.Context(), settlementRef)
	if err != nil {
		logrus.Warnf("⚠️ Nova Poshta warehouse lookup failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Не вдалося завантажити відділення"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Warehouses fetched", gin.H{
		"warehouses": warehouses,
	}))
}
