package httpapi

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/arena-scrim/internal/domain/match"
	"github.com/riskibarqy/arena-scrim/internal/domain/profile"
	"github.com/riskibarqy/arena-scrim/internal/usecase"
)

// errorMessages maps a usecase sentinel to the message shown for one action.
type errorMessages map[error]string

const (
	messageLoginRequired        = "로그인이 필요합니다."
	messageInvalidInput         = "입력값이 올바르지 않습니다."
	messageForbidden            = "권한이 없습니다."
	messageNotFound             = "요청한 정보를 찾을 수 없습니다."
	messageInvalidState         = "현재 상태에서는 요청을 처리할 수 없습니다."
	messageConflict             = "이미 처리된 요청입니다."
	messageRateLimited          = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	messageProviderMisconfig    = "API 키가 만료되었거나 유효하지 않습니다. 관리자에게 문의하세요."
	messageProviderFailure      = "라이엇 API 오류가 발생했습니다."
	messageDependencyDown       = "일시적으로 서비스를 이용할 수 없습니다. 잠시 후 다시 시도해주세요."
	messageInternal             = "서버 오류가 발생했습니다."
	messageInvalidRiotID        = "라이엇 ID 형식이 올바르지 않습니다. (예: 소환사명#KR1)"
	messageRiotAccountNotFound  = "라이엇 계정을 찾을 수 없습니다."
	messagePUUIDTaken           = "이미 다른 계정에서 사용 중인 라이엇 계정입니다."
	messageNoPendingAttempt     = "진행 중인 인증이 없습니다. 처음부터 다시 시도해주세요."
	messageAlreadyVerified      = "이미 인증이 완료된 계정입니다."
	messageNoRiotAccount        = "연결된 라이엇 계정이 없습니다."
	messageAlreadyInTeam        = "이미 팀에 소속되어 있습니다."
	messageCaptainOnly          = "팀장만 수정할 수 있습니다."
	messageCaptainCannotLeave   = "팀장은 팀을 떠날 수 없습니다."
	messageVerificationRequired = "라이엇 계정 인증이 필요합니다."
	messageInvalidInviteCode    = "유효하지 않은 초대 코드입니다."
	messageTeamRequired         = "팀에 소속되어 있어야 합니다."
	messageAllMembersVerified   = "모든 팀원이 라이엇 계정 인증을 완료해야 합니다."
	messageMatchNotFound        = "경기를 찾을 수 없습니다."
	messageSelfChallenge        = "자신의 팀에 도전할 수 없습니다."
	messageNotParticipant       = "이 경기에 참여하지 않았습니다."
	messageCannotReport         = "결과를 보고할 수 없는 상태입니다."
	messageMatchUnavailable     = "이미 마감되었거나 취소된 경기입니다."
	messageClaimantCannotAnswer = "상대 팀만 결과를 확인하거나 이의를 제기할 수 있습니다."
	messageHostOnly             = "격문을 올린 팀만 취소할 수 있습니다."
	messageCaptainOnlyMatch     = "팀에 소속된 팀장만 이용할 수 있습니다."
)

// userMessage picks the most specific message: typed payloads first, then
// domain sentinels, then per-action overrides, then the generic kind message.
func userMessage(err error, overrides ...errorMessages) string {
	var eligibility *usecase.EligibilityError
	if errors.As(err, &eligibility) {
		switch eligibility.Requirement {
		case usecase.RequirementSummonerLevel:
			return fmt.Sprintf("소환사 레벨이 %d 이상이어야 합니다. (현재: %d)", eligibility.Required, eligibility.Observed)
		case usecase.RequirementRosterSize:
			return fmt.Sprintf("팀원이 %d명 이상이어야 격문을 올릴 수 있습니다.", eligibility.Required)
		case usecase.RequirementRosterVerified:
			return messageAllMembersVerified
		}
	}

	var mismatch *usecase.IconMismatchError
	if errors.As(err, &mismatch) {
		return fmt.Sprintf("프로필 아이콘이 일치하지 않습니다. 아이콘을 변경한 후 다시 시도해주세요. (현재: %d, 필요: %d)", mismatch.Observed, mismatch.Required)
	}

	switch {
	case errors.Is(err, profile.ErrInvalidRiotID):
		return messageInvalidRiotID
	case errors.Is(err, profile.ErrPUUIDTaken):
		return messagePUUIDTaken
	case errors.Is(err, profile.ErrNoPendingAttempt):
		return messageNoPendingAttempt
	case errors.Is(err, profile.ErrAlreadyVerified):
		return messageAlreadyVerified
	case errors.Is(err, match.ErrSelfChallenge):
		return messageSelfChallenge
	case errors.Is(err, match.ErrNotParticipant):
		return messageNotParticipant
	case errors.Is(err, match.ErrClaimantCannotRespond):
		return messageClaimantCannotAnswer
	case errors.Is(err, match.ErrNotHost):
		return messageHostOnly
	}

	for _, set := range overrides {
		for sentinel, msg := range set {
			if errors.Is(err, sentinel) {
				return msg
			}
		}
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return messageInvalidInput
	case errors.Is(err, usecase.ErrUnauthorized):
		return messageLoginRequired
	case errors.Is(err, usecase.ErrForbidden):
		return messageForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return messageNotFound
	case errors.Is(err, usecase.ErrInvalidState):
		return messageInvalidState
	case errors.Is(err, usecase.ErrConflict):
		return messageConflict
	case errors.Is(err, usecase.ErrRateLimited):
		return messageRateLimited
	case errors.Is(err, usecase.ErrProviderMisconfigured):
		return messageProviderMisconfig
	case errors.Is(err, usecase.ErrProviderFailure):
		return messageProviderFailure
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return messageDependencyDown
	}
	return messageInternal
}
