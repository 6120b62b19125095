// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// Severity names of debug report messages
const (
	SeverityVerbose = "Verbose"
	SeverityInfo    = "Info"
	SeverityWarning = "Warning"
	SeverityError   = "Error"
)

// Type names of debug report messages
const (
	TypeGeneral     = "General"
	TypeValidation  = "Validation"
	TypePerformance = "Performance"
)

// AllDebugFlags subscribes to every kind of debug report message
var AllDebugFlags = vk.DebugReportFlags(vk.DebugReportInformationBit |
	vk.DebugReportWarningBit |
	vk.DebugReportPerformanceWarningBit |
	vk.DebugReportErrorBit |
	vk.DebugReportDebugBit)

func has(flags vk.DebugReportFlags, bit vk.DebugReportFlagBits) bool {
	return flags&vk.DebugReportFlags(bit) != 0
}

// DebugSeverity names the most severe kind present in flags.
func DebugSeverity(flags vk.DebugReportFlags) (string, error) {
	if flags&^AllDebugFlags != 0 {
		return "", errors.Errorf("invalid severity code %#x", uint32(flags))
	}
	switch {
	case has(flags, vk.DebugReportErrorBit):
		return SeverityError, nil
	case has(flags, vk.DebugReportWarningBit), has(flags, vk.DebugReportPerformanceWarningBit):
		return SeverityWarning, nil
	case has(flags, vk.DebugReportInformationBit):
		return SeverityInfo, nil
	case has(flags, vk.DebugReportDebugBit):
		return SeverityVerbose, nil
	}
	return "", errors.Errorf("invalid severity code %#x", uint32(flags))
}

// DebugType names the message category present in flags.
func DebugType(flags vk.DebugReportFlags) (string, error) {
	if flags&^AllDebugFlags != 0 {
		return "", errors.Errorf("invalid type code %#x", uint32(flags))
	}
	switch {
	case has(flags, vk.DebugReportPerformanceWarningBit):
		return TypePerformance, nil
	case has(flags, vk.DebugReportErrorBit), has(flags, vk.DebugReportWarningBit):
		return TypeValidation, nil
	case has(flags, vk.DebugReportInformationBit), has(flags, vk.DebugReportDebugBit):
		return TypeGeneral, nil
	}
	return "", errors.Errorf("invalid type code %#x", uint32(flags))
}

func severityLevel(severity string) logrus.Level {
	switch severity {
	case SeverityError:
		return logrus.ErrorLevel
	case SeverityWarning:
		return logrus.WarnLevel
	case SeverityInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// NewDebugCallback returns a debug report callback that writes every
// message to logger. It never asks the layer to abort the call.
func NewDebugCallback(logger *logrus.Logger) func(vk.DebugReportFlags, vk.DebugReportObjectType,
	uint64, uint, int32, string, string, unsafe.Pointer) vk.Bool32 {
	return func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint64, location uint, messageCode int32, pLayerPrefix string,
		pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

		entry := logger.WithFields(logrus.Fields{
			"layer":       pLayerPrefix,
			"code":        messageCode,
			"object":      fmt.Sprintf("%#x", object),
			"object_type": int(objectType),
		})

		severity, err := DebugSeverity(flags)
		if err != nil {
			entry.WithError(err).Error("Debug callback: " + pMessage)
			return vk.Bool32(vk.False)
		}
		typ, err := DebugType(flags)
		if err != nil {
			entry.WithError(err).Error("Debug callback: " + pMessage)
			return vk.Bool32(vk.False)
		}

		entry.WithFields(logrus.Fields{
			"severity": severity,
			"type":     typ,
		}).Log(severityLevel(severity), "Debug callback: "+pMessage)
		return vk.Bool32(vk.False)
	}
}
