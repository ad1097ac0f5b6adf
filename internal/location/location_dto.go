package location

type CreateStateRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,len=2,alpha"`
}

type CreateCityRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type StateResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type CityResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"state_id"`
}
