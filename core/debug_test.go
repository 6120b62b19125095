// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"testing"

	"github.com/devblok/vkboot/core"
	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	vk "github.com/vulkan-go/vulkan"
)

func flags(bits ...vk.DebugReportFlagBits) vk.DebugReportFlags {
	var f vk.DebugReportFlags
	for _, b := range bits {
		f |= vk.DebugReportFlags(b)
	}
	return f
}

func TestDebugClassification(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		flags    vk.DebugReportFlags
		severity string
		typ      string
	}{
		{flags(vk.DebugReportDebugBit), core.SeverityVerbose, core.TypeGeneral},
		{flags(vk.DebugReportInformationBit), core.SeverityInfo, core.TypeGeneral},
		{flags(vk.DebugReportWarningBit), core.SeverityWarning, core.TypeValidation},
		{flags(vk.DebugReportPerformanceWarningBit), core.SeverityWarning, core.TypePerformance},
		{flags(vk.DebugReportErrorBit), core.SeverityError, core.TypeValidation},
		{flags(vk.DebugReportErrorBit, vk.DebugReportDebugBit), core.SeverityError, core.TypeValidation},
	} {
		severity, err := core.DebugSeverity(tc.flags)
		c.Assert(err, qt.IsNil)
		c.Assert(severity, qt.Equals, tc.severity, qt.Commentf("flags %#x", uint32(tc.flags)))

		typ, err := core.DebugType(tc.flags)
		c.Assert(err, qt.IsNil)
		c.Assert(typ, qt.Equals, tc.typ, qt.Commentf("flags %#x", uint32(tc.flags)))
	}
}

func TestDebugClassificationInvalid(t *testing.T) {
	c := qt.New(t)

	_, err := core.DebugSeverity(0)
	c.Assert(err, qt.ErrorMatches, "invalid severity code 0x0")

	_, err = core.DebugType(vk.DebugReportFlags(0x100))
	c.Assert(err, qt.ErrorMatches, "invalid type code 0x100")
}

func TestDebugCallbackLogs(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	callback := core.NewDebugCallback(logger)

	ret := callback(flags(vk.DebugReportWarningBit), vk.DebugReportObjectType(1), 0xbeef, 0, 7, "Validation", "something odd", nil)
	c.Assert(ret, qt.Equals, vk.Bool32(vk.False))

	entry := hook.LastEntry()
	c.Assert(entry, qt.Not(qt.IsNil))
	c.Assert(entry.Level, qt.Equals, logrus.WarnLevel)
	c.Assert(entry.Message, qt.Equals, "Debug callback: something odd")
	c.Assert(entry.Data["severity"], qt.Equals, core.SeverityWarning)
	c.Assert(entry.Data["type"], qt.Equals, core.TypeValidation)
	c.Assert(entry.Data["layer"], qt.Equals, "Validation")
	c.Assert(entry.Data["code"], qt.Equals, int32(7))
	c.Assert(entry.Data["object"], qt.Equals, "0xbeef")
}

func TestDebugCallbackUnknownFlags(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()
	callback := core.NewDebugCallback(logger)

	ret := callback(vk.DebugReportFlags(0x100), 0, 0, 0, 0, "", "bad", nil)
	c.Assert(ret, qt.Equals, vk.Bool32(vk.False))
	c.Assert(hook.LastEntry().Level, qt.Equals, logrus.ErrorLevel)
	c.Assert(hook.LastEntry().Data[logrus.ErrorKey], qt.ErrorMatches, "invalid severity code 0x100")
}
