package grpc

import (
	"math"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/profiles"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request field names.
const (
	fieldContext   = "context"
	fieldUserID    = "user_id"
	fieldToken     = "token"
	fieldTokenType = "token_type"
	fieldID        = "id"
)

// registrationContext reads the "context" struct. A missing context is an
// empty bag; the hooks report whichever key they needed.
func registrationContext(in *structpb.Struct) authengine.RegistrationContext {
	ctx := in.GetFields()[fieldContext].GetStructValue()
	return authengine.NewRegistrationContext(ctx.AsMap())
}

// maxSafeInteger is the largest integer a protobuf number (float64) holds
// exactly.
const maxSafeInteger = 1<<53 - 1

// userID returns the raw "user_id" value: a string, or an int64 for numeric
// engine ids. nil when absent. Numbers that are not exact integers are
// rejected; larger ids must be sent as strings.
func userID(v *structpb.Value) (any, error) {
	if v == nil {
		return nil, nil
	}
	if _, ok := v.GetKind().(*structpb.Value_NumberValue); ok {
		f := v.GetNumberValue()
		if f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
			return nil, &common.MissingFieldError{Field: fieldUserID, Reason: "numeric id is not a safe integer, send it as a string"}
		}
		return int64(f), nil
	}
	return v.AsInterface(), nil
}

// magicLinkToken reads {"token": {"user_id", "token", "token_type"}}.
func magicLinkToken(in *structpb.Struct) (authengine.MagicLinkToken, error) {
	tok := in.GetFields()[fieldToken].GetStructValue()
	if tok == nil {
		return authengine.MagicLinkToken{}, &common.MissingFieldError{Field: fieldToken}
	}
	fields := tok.GetFields()

	value := fields[fieldToken].GetStringValue()
	if value == "" {
		return authengine.MagicLinkToken{}, &common.MissingFieldError{Field: fieldToken + "." + fieldToken}
	}

	id, err := userID(fields[fieldUserID])
	if err != nil {
		return authengine.MagicLinkToken{}, err
	}

	return authengine.MagicLinkToken{
		UserID:    id,
		Token:     value,
		TokenType: authengine.TokenType(fields[fieldTokenType].GetStringValue()),
	}, nil
}

func profileID(in *structpb.Struct) (string, error) {
	id := in.GetFields()[fieldID].GetStringValue()
	if id == "" {
		return "", &common.MissingFieldError{Field: fieldID}
	}
	return id, nil
}

// profileStruct renders the dehydrated row, nulls included.
func profileStruct(p *models.Profile) (*structpb.Struct, error) {
	return structpb.NewStruct(profiles.Dehydrate(p))
}
