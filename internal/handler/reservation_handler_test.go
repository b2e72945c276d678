package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReservationHandler_Create(t *testing.T) {
	date := time.Date(2030, 5, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		body           any
		mockError      error
		expectedStatus int
		expectService  bool
		expectMessage  string
	}{
		{
			name:           "Created",
			body:           model.ReservationRequest{ReservationDate: date, NumberOfPeople: 4, ReservationType: model.ReservationMeetingTable},
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Date in the past",
			body:           model.ReservationRequest{ReservationDate: date, NumberOfPeople: 4, ReservationType: model.ReservationMeetingTable},
			mockError:      model.ErrReservationInPast,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
			expectMessage:  "Reservation date must be in the future",
		},
		{
			name:           "Unknown reservation type",
			body:           map[string]any{"reservation_date": date, "number_of_people": 4, "reservation_type": "ballroom"},
			expectedStatus: http.StatusBadRequest,
			expectMessage:  "reservation_type: must be one of [conference_room meeting_table]",
		},
		{
			name:           "Missing date",
			body:           map[string]any{"number_of_people": 4, "reservation_type": "meeting_table"},
			expectedStatus: http.StatusBadRequest,
			expectMessage:  "reservation_date: this field is required",
		},
		{
			name:           "Nobody attending",
			body:           map[string]any{"reservation_date": date, "number_of_people": 0, "reservation_type": "meeting_table"},
			expectedStatus: http.StatusBadRequest,
			expectMessage:  "number_of_people: must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReservationService)
			if tt.expectService {
				var created *model.Reservation
				if tt.mockError == nil {
					created = &model.Reservation{ID: uuid.New(), UserID: testCaller.UserID, ReservationDate: date, NumberOfPeople: 4, ReservationType: model.ReservationMeetingTable}
				}
				mockService.On("Create", mock.Anything, testCaller, mock.MatchedBy(func(req *model.ReservationRequest) bool {
					return req.ReservationDate.Equal(date) && req.NumberOfPeople == 4 && req.Restaurant == nil
				})).Return(created, tt.mockError)
			}
			handler := NewReservationHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Create(w, newRequest(t, http.MethodPost, "/api/reservations/", tt.body, &testCaller, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectMessage != "" {
				assert.Equal(t, tt.expectMessage, decodeError(t, w).Message)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestReservationHandler_Create_RequiresCaller(t *testing.T) {
	mockService := new(MockReservationService)
	handler := NewReservationHandler(mockService, zerolog.Nop())

	w := httptest.NewRecorder()
	handler.Create(w, newRequest(t, http.MethodPost, "/api/reservations/", map[string]any{}, nil, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationHandler_List(t *testing.T) {
	mockService := new(MockReservationService)
	mockService.On("List", mock.Anything, testCaller, 5, 10).Return([]model.Reservation{{ID: uuid.New(), NumberOfPeople: 2}}, nil)
	handler := NewReservationHandler(mockService, zerolog.Nop())

	w := httptest.NewRecorder()
	handler.List(w, newRequest(t, http.MethodGet, "/api/reservations/?limit=5&offset=10", nil, &testCaller, nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	mockService.AssertExpectations(t)
}

// Reservations belonging to someone else are reported as missing.
func TestReservationHandler_OwnerOnly(t *testing.T) {
	id := uuid.New()
	params := map[string]string{"id": id.String()}
	target := "/api/reservations/" + id.String() + "/"

	tests := []struct {
		name         string
		mockError    error
		getStatus    int
		updateStatus int
		deleteStatus int
	}{
		{name: "Own reservation", getStatus: http.StatusOK, updateStatus: http.StatusOK, deleteStatus: http.StatusNoContent},
		{name: "Someone else's", mockError: model.ErrReservationNotFound, getStatus: http.StatusNotFound, updateStatus: http.StatusNotFound, deleteStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reservation *model.Reservation
			if tt.mockError == nil {
				reservation = &model.Reservation{ID: id, UserID: testCaller.UserID, NumberOfPeople: 6}
			}
			people := 6
			mockService := new(MockReservationService)
			mockService.On("Get", mock.Anything, testCaller, id).Return(reservation, tt.mockError)
			mockService.On("Update", mock.Anything, testCaller, id, &model.ReservationUpdateRequest{NumberOfPeople: &people}).
				Return(reservation, tt.mockError)
			mockService.On("Delete", mock.Anything, testCaller, id).Return(tt.mockError)
			handler := NewReservationHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.Get(w, newRequest(t, http.MethodGet, target, nil, &testCaller, params))
			assert.Equal(t, tt.getStatus, w.Code)

			w = httptest.NewRecorder()
			handler.Update(w, newRequest(t, http.MethodPatch, target, map[string]any{"number_of_people": 6}, &testCaller, params))
			assert.Equal(t, tt.updateStatus, w.Code)

			w = httptest.NewRecorder()
			handler.Delete(w, newRequest(t, http.MethodDelete, target, nil, &testCaller, params))
			assert.Equal(t, tt.deleteStatus, w.Code)

			mockService.AssertExpectations(t)
		})
	}
}

func TestReservationHandler_Update_Validation(t *testing.T) {
	id := uuid.New()
	mockService := new(MockReservationService)
	handler := NewReservationHandler(mockService, zerolog.Nop())

	w := httptest.NewRecorder()
	handler.Update(w, newRequest(t, http.MethodPatch, "/api/reservations/"+id.String()+"/",
		map[string]any{"reservation_type": "ballroom"}, &testCaller, map[string]string{"id": id.String()}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "reservation_type: must be one of [conference_room meeting_table]", decodeError(t, w).Message)
	mockService.AssertExpectations(t)
}

func TestReservationHandler_Categories(t *testing.T) {
	restaurantID := uuid.New()
	params := map[string]string{"id": restaurantID.String()}
	target := "/api/restaurants/" + restaurantID.String() + "/reservation-categories/"

	t.Run("list is public", func(t *testing.T) {
		mockService := new(MockReservationService)
		mockService.On("ListCategories", mock.Anything, restaurantID).Return([]model.ReservationCategory{
			{ID: uuid.New(), Name: "Terrace", ReservationType: model.ReservationMeetingTable, RestaurantID: restaurantID},
		}, nil)
		handler := NewReservationHandler(mockService, zerolog.Nop())

		w := httptest.NewRecorder()
		handler.ListCategories(w, newRequest(t, http.MethodGet, target, nil, nil, params))

		require.Equal(t, http.StatusOK, w.Code)
		var list []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list, 1)
		assert.Equal(t, "meeting_table", list[0]["reservation_type"])
		mockService.AssertExpectations(t)
	})

	tests := []struct {
		name           string
		body           any
		mockError      error
		expectedStatus int
		expectService  bool
		expectMessage  string
	}{
		{name: "Created", body: model.ReservationCategoryRequest{Name: "Terrace", ReservationType: model.ReservationConferenceRoom}, expectedStatus: http.StatusCreated, expectService: true},
		{name: "Not staff", body: model.ReservationCategoryRequest{Name: "Terrace", ReservationType: model.ReservationConferenceRoom}, mockError: model.ErrForbidden, expectedStatus: http.StatusForbidden, expectService: true},
		{name: "Unknown restaurant", body: model.ReservationCategoryRequest{Name: "Terrace", ReservationType: model.ReservationConferenceRoom}, mockError: model.ErrRestaurantNotFound, expectedStatus: http.StatusNotFound, expectService: true},
		{name: "Missing name", body: map[string]any{"reservation_type": "conference_room"}, expectedStatus: http.StatusBadRequest, expectMessage: "name: this field is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *model.ReservationCategory
			if tt.mockError == nil {
				created = &model.ReservationCategory{ID: uuid.New(), Name: "Terrace", ReservationType: model.ReservationConferenceRoom, RestaurantID: restaurantID}
			}
			mockService := new(MockReservationService)
			if tt.expectService {
				mockService.On("CreateCategory", mock.Anything, testCaller, restaurantID,
					&model.ReservationCategoryRequest{Name: "Terrace", ReservationType: model.ReservationConferenceRoom}).
					Return(created, tt.mockError)
			}
			handler := NewReservationHandler(mockService, zerolog.Nop())

			w := httptest.NewRecorder()
			handler.CreateCategory(w, newRequest(t, http.MethodPost, target, tt.body, &testCaller, params))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectMessage != "" {
				assert.Equal(t, tt.expectMessage, decodeError(t, w).Message)
			}
			mockService.AssertExpectations(t)
		})
	}
}
