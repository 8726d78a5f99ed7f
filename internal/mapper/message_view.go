package mapper

import (
	"fmt"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
)

// DeletedPlaceholder replaces the content of a message that was deleted
// for everyone.
const DeletedPlaceholder = "This message was deleted"

// RenderMessage derives the per-viewer representation of a message.
// It is a pure function: no record mutation, no conditional field
// stripping. hiddenForViewer is true when the viewer holds a tombstone
// for this message; list queries already exclude those rows, so the
// flag only matters when a hidden message is rendered directly.
//
// baseURL, when non-empty, is used to build an absolute download URL
// for attachments.
func RenderMessage(msg *entity.Message, hiddenForViewer bool, baseURL string) *dto.MessageView {
	if msg.DeletedForEveryone {
		return redactedView(msg)
	}
	return fullView(msg, hiddenForViewer, baseURL)
}

// RenderMessages renders a list the viewer is allowed to see. Rows the
// viewer hid for themselves are excluded at the query layer, so every
// entry renders with hiddenForViewer false.
func RenderMessages(msgs []*entity.Message, baseURL string) []*dto.MessageView {
	views := make([]*dto.MessageView, len(msgs))
	for i, msg := range msgs {
		views[i] = RenderMessage(msg, false, baseURL)
	}
	return views
}

// redactedView keeps only identity and ordering fields; content becomes
// the placeholder and file fields are nulled for every viewer.
func redactedView(msg *entity.Message) *dto.MessageView {
	return &dto.MessageView{
		Id:                 msg.Id,
		RoomId:             msg.RoomId,
		Sender:             senderResponse(msg),
		Content:            DeletedPlaceholder,
		FileName:           nil,
		FileURL:            nil,
		Timestamp:          msg.CreatedAt,
		IsDeleted:          true,
		DeletedForEveryone: true,
	}
}

func fullView(msg *entity.Message, hiddenForViewer bool, baseURL string) *dto.MessageView {
	view := &dto.MessageView{
		Id:                 msg.Id,
		RoomId:             msg.RoomId,
		Sender:             senderResponse(msg),
		Content:            msg.Content,
		FileName:           msg.FileName,
		Timestamp:          msg.CreatedAt,
		IsDeleted:          hiddenForViewer,
		DeletedForEveryone: false,
	}
	if msg.HasFile() && baseURL != "" {
		url := fmt.Sprintf("%s/api/messages/%s/download", baseURL, msg.Id)
		view.FileURL = &url
	}
	return view
}

func senderResponse(msg *entity.Message) dto.UserResponse {
	if msg.Sender != nil {
		return ToUserResponse(msg.Sender)
	}
	return dto.UserResponse{Id: msg.SenderId}
}
