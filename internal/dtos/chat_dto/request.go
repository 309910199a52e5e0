package chat_dto

type CreateChatroomRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
